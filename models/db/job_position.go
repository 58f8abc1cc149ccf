package dbmodels

type JobPosition struct {
	BaseModel
	Name     string `gorm:"type:varchar(255)"`
	IsActive bool   `gorm:"default:true"`
}
