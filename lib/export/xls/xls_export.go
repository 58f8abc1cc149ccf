package xlsexport

import (
	"bytes"
	"fmt"

	dbmodels "ats-backend/models/db"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
)

type Provider interface {
	ExportApplicationList(list []dbmodels.CandidateApplication) (*bytes.Buffer, error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{}
}

type impl struct{}

var applicationHeaders = []string{"Name", "Contacts", "Recruitment", "Stage", "Source", "Schedule date", "Offer letter", "Status"}

func (i impl) ExportApplicationList(list []dbmodels.CandidateApplication) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			log.WithError(err).Error("failed to close the xlsx file")
		}
	}()
	sheet := "Sheet1"
	row := 0
	row, err := writeHeader(f, sheet, row, applicationHeaders)
	if err != nil {
		return nil, errors.Wrap(err, "failed to write the xlsx header")
	}
	if len(list) != 0 {
		row, err = writeApplicationData(f, sheet, list, row)
		if err != nil {
			return nil, errors.Wrap(err, "failed to write the xlsx data rows")
		}
	}
	f.SetSheetName(sheet, "Applications")
	return f.WriteToBuffer()
}

func writeApplicationData(f *excelize.File, sheet string, list []dbmodels.CandidateApplication, row int) (int, error) {
	if err := applyDataCellStyle(f, sheet, 1, row+1, len(applicationHeaders), len(list)+1); err != nil {
		return row, err
	}
	for _, item := range list {
		row++
		// "Name"
		col := 1
		if err := writeColumn(f, sheet, col, row, item.Name); err != nil {
			return row, err
		}

		// "Contacts"
		col++
		if err := writeColumn(f, sheet, col, row, fmt.Sprintf("%v\r%v", item.Mobile, item.Email)); err != nil {
			return row, err
		}

		// "Recruitment"
		col++
		if item.Recruitment != nil {
			if err := writeColumn(f, sheet, col, row, item.Recruitment.Title); err != nil {
				return row, err
			}
		}

		// "Stage"
		col++
		if item.Stage != nil {
			if err := writeColumn(f, sheet, col, row, item.Stage.Label); err != nil {
				return row, err
			}
		}

		// "Source"
		col++
		if err := writeColumn(f, sheet, col, row, string(item.Source)); err != nil {
			return row, err
		}

		// "Schedule date"
		col++
		if item.ScheduleDate != nil {
			if err := writeColumn(f, sheet, col, row, item.ScheduleDate.Format("02.01.2006")); err != nil {
				return row, err
			}
		}

		// "Offer letter"
		col++
		if err := writeColumn(f, sheet, col, row, item.OfferLetterStatus.ToHuman()); err != nil {
			return row, err
		}

		// "Status"
		col++
		if err := writeColumn(f, sheet, col, row, applicationStatus(item)); err != nil {
			return row, err
		}
	}
	return row, nil
}

func applicationStatus(item dbmodels.CandidateApplication) string {
	switch {
	case item.Converted:
		return "Converted"
	case item.Hired:
		return "Hired"
	case item.Canceled:
		return "Cancelled"
	case !item.IsActive:
		return "Archived"
	}
	return "In progress"
}
