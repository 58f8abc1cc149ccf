package initializers

import (
	"context"

	"ats-backend/config"
	"ats-backend/fiberlog"
	"ats-backend/lib/application"
	applicationhistoryhandler "ats-backend/lib/application-history"
	"ats-backend/lib/directory"
	xlsexport "ats-backend/lib/export/xls"
	"ats-backend/lib/interview"
	"ats-backend/lib/notifier"
	"ats-backend/lib/pipeline"
	pipelineview "ats-backend/lib/pipeline-view"
	"ats-backend/lib/recruitment"
	stagegraph "ats-backend/lib/stage-graph"
)

var LoggerConfig *fiberlog.Config

// InitAllServices wires the handlers in dependency order: a handler may read
// the Instance of anything initialized before it.
func InitAllServices(ctx context.Context) {
	LoggerConfig = InitLogger()
	config.InitConfig()
	InitDBConnection()
	InitSmtp()
	directory.NewHandler()
	notifier.NewHandler()
	xlsexport.NewHandler()
	applicationhistoryhandler.NewHandler()
	application.NewHandler()
	stagegraph.NewHandler()
	recruitment.NewHandler()
	interview.NewHandler()
	pipelineview.NewHandler()
	pipeline.NewHandler()
}
