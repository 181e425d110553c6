package receipt

import (
	"errors"
	"strings"
	"testing"

	"pantry-backend/domain"
)

var sampleAccessKey = strings.Repeat("1234567890", 4) + "1234"

func TestParseQrPayload(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		wantKey string
		wantErr bool
	}{
		{
			name:    "bare access key",
			payload: sampleAccessKey,
			wantKey: sampleAccessKey,
		},
		{
			name:    "bare access key with whitespace",
			payload: "  " + sampleAccessKey + "\n",
			wantKey: sampleAccessKey,
		},
		{
			name:    "consulta url with pipe separated fields",
			payload: "https://www.fazenda.pr.gov.br/nfce/qrcode?p=" + sampleAccessKey + "|2|1|1|ABCDEF0123456789",
			wantKey: sampleAccessKey,
		},
		{
			name:    "consulta url with key only",
			payload: "https://nfce.sefaz.rs.gov.br/consulta?p=" + sampleAccessKey,
			wantKey: sampleAccessKey,
		},
		{
			name:    "key too short",
			payload: sampleAccessKey[:43],
			wantErr: true,
		},
		{
			name:    "key with letters",
			payload: sampleAccessKey[:43] + "X",
			wantErr: true,
		},
		{
			name:    "url without p parameter",
			payload: "https://www.fazenda.pr.gov.br/nfce/qrcode?q=" + sampleAccessKey,
			wantErr: true,
		},
		{
			name:    "url with short key in p parameter",
			payload: "https://www.fazenda.pr.gov.br/nfce/qrcode?p=123|2|1",
			wantErr: true,
		},
		{
			name:    "not a url",
			payload: "leite arroz feijao",
			wantErr: true,
		},
		{
			name:    "empty payload",
			payload: "   ",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key, err := ParseQrPayload(tt.payload)
			if tt.wantErr {
				if !errors.Is(err, domain.ErrMalformedQrPayload) {
					t.Fatalf("expected ErrMalformedQrPayload, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if key != tt.wantKey {
				t.Fatalf("expected key %q, got %q", tt.wantKey, key)
			}
		})
	}
}
