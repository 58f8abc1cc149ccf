package dbmodels

// StageNote is a remark left on an application while it sat on a stage.
type StageNote struct {
	BaseModel
	ApplicationID string                `gorm:"type:varchar(36);index"`
	Application   *CandidateApplication `gorm:"foreignKey:ApplicationID"`
	StageID       *string
	AuthorID      *string
	Author        *Employee `gorm:"foreignKey:AuthorID"`
	Description   string
}
