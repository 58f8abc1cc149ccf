package dbmodels

// SkillRating is a per-skill score on an application. The rating value is
// immutable once written, only the notes text may change afterwards.
type SkillRating struct {
	BaseModel
	ApplicationID string                `gorm:"type:varchar(36);uniqueIndex:idx_application_skill"`
	Application   *CandidateApplication `gorm:"foreignKey:ApplicationID"`
	Skill         string                `gorm:"type:varchar(255);uniqueIndex:idx_application_skill"`
	Rating        int
	Notes         string
	RatedByID     *string
	RatedBy       *Employee `gorm:"foreignKey:RatedByID"`
}
