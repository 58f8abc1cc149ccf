package db

import (
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	dbmodels "ats-backend/models/db"
)

func AutoMigrateDB() error {
	DB.Exec("CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\";")
	log.Info("running migrations")
	for _, model := range []interface{}{
		&dbmodels.Employee{},
		&dbmodels.JobPosition{},
		&dbmodels.Recruitment{},
		&dbmodels.RecruitmentPosition{},
		&dbmodels.RecruitmentTeam{},
		&dbmodels.Stage{},
		&dbmodels.StageAssignment{},
		&dbmodels.CandidateApplication{},
		&dbmodels.InterviewSchedule{},
		&dbmodels.InterviewInterviewer{},
		&dbmodels.StageNote{},
		&dbmodels.SkillRating{},
		&dbmodels.ApplicationHistory{},
	} {
		if err := DB.AutoMigrate(model); err != nil {
			return errors.Wrapf(err, "migration failed for %T", model)
		}
	}
	log.Info("migrations finished")
	return nil
}
