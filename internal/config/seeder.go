package config

import (
	"log"

	"smarthealth/internal/adapters/persistence/models"
	"smarthealth/internal/pkg/password"

	"gorm.io/gorm"
)

// SeedData creates the baseline departments, doctors and staff accounts.
// Existing rows are left untouched, so the seeder is safe to run on every boot.
func SeedData(db *gorm.DB) error {
	if err := seedDepartments(db); err != nil {
		return err
	}
	if err := seedDoctors(db); err != nil {
		return err
	}
	if err := seedUsers(db); err != nil {
		return err
	}
	log.Println("✅ Seed data checked successfully")
	return nil
}

func seedDepartments(db *gorm.DB) error {
	departments := []models.Department{
		{Name: "Cardiology", Description: "Heart and vascular care", IsOpen: true, MaxQueueSize: 50},
		{Name: "Orthopedics", Description: "Bone and joint care", IsOpen: true, MaxQueueSize: 50},
		{Name: "Pediatrics", Description: "Child health care", IsOpen: true, MaxQueueSize: 50},
		{Name: "General Medicine", Description: "General consultations", IsOpen: true, MaxQueueSize: 50},
	}

	for _, d := range departments {
		var existing models.Department
		if err := db.Where("name = ?", d.Name).First(&existing).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				if err := db.Create(&d).Error; err != nil {
					return err
				}
				log.Printf("   Created department: %s", d.Name)
			}
		}
	}
	return nil
}

func seedDoctors(db *gorm.DB) error {
	doctors := []struct {
		name           string
		specialization string
		department     string
	}{
		{"Dr. Asha Mehta", "Cardiologist", "Cardiology"},
		{"Dr. Ravi Shankar", "Orthopedic Surgeon", "Orthopedics"},
		{"Dr. Nisha Rao", "Pediatrician", "Pediatrics"},
		{"Dr. Vikram Iyer", "General Physician", "General Medicine"},
	}

	for _, d := range doctors {
		var department models.Department
		if err := db.Where("name = ?", d.department).First(&department).Error; err != nil {
			log.Printf("⚠️ Skipping doctor seed: department %s not found", d.department)
			continue
		}

		var existing models.Doctor
		if err := db.Where("name = ?", d.name).First(&existing).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				doctor := models.Doctor{
					Name:           d.name,
					Specialization: d.specialization,
					DepartmentID:   department.ID,
					IsAvailable:    true,
				}
				if err := db.Create(&doctor).Error; err != nil {
					return err
				}
				log.Printf("   Created doctor: %s (%s)", d.name, d.department)
			}
		}
	}
	return nil
}

func seedUsers(db *gorm.DB) error {
	users := []struct {
		username string
		name     string
		role     string
		password string
	}{
		{"admin", "System Administrator", "admin", "admin12345"},
		{"receptionist", "Front Desk", "receptionist", "frontdesk123"},
		{"doctor1", "Dr. Asha Mehta", "doctor", "doctor12345"},
	}

	for _, u := range users {
		var existing models.User
		if err := db.Where("username = ?", u.username).First(&existing).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				hashed, err := password.Hash(u.password)
				if err != nil {
					return err
				}
				user := models.User{
					Username: u.username,
					Password: hashed,
					Name:     u.name,
					Role:     u.role,
					IsActive: true,
				}
				if err := db.Create(&user).Error; err != nil {
					return err
				}
				log.Printf("   Created user: %s (%s)", u.username, u.role)
			}
		}
	}
	return nil
}
