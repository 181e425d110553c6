package migration

import (
	"fmt"
	"log"

	"pantry-backend/entities"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&entities.User{}); err != nil {
		log.Fatalf("Error migrating user database: %v", err)
		return err
	}
	if err := db.AutoMigrate(
		&entities.Category{},
		&entities.Brand{},
		&entities.MeasurementUnit{},
		&entities.Product{},
	); err != nil {
		log.Fatalf("Error migrating catalog database: %v", err)
		return err
	}
	if err := db.AutoMigrate(
		&entities.FiscalReceipt{},
		&entities.FiscalReceiptItem{},
	); err != nil {
		log.Fatalf("Error migrating receipt database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.ProductBatch{}); err != nil {
		log.Fatalf("Error migrating batch database: %v", err)
		return err
	}

	fmt.Println("Database migration complete")
	return nil
}
