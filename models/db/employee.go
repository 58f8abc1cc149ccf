package dbmodels

import "fmt"

type Employee struct {
	BaseModel
	FirstName   string `gorm:"type:varchar(255)"`
	LastName    string `gorm:"type:varchar(255)"`
	Email       string `gorm:"type:varchar(255);uniqueIndex"`
	Phone       string `gorm:"type:varchar(255)"`
	IsSuperuser bool
	IsActive    bool `gorm:"default:true"`
	// set when the employee record was produced by application conversion
	IsDirectlyConverted bool
}

func (e Employee) GetFullName() string {
	return fmt.Sprintf("%v %v", e.FirstName, e.LastName)
}
