package apiv1

import (
	"ats-backend/controllers"
	"ats-backend/lib/application"
	applicationhistoryhandler "ats-backend/lib/application-history"
	"ats-backend/lib/interview"
	"ats-backend/middleware"
	apimodels "ats-backend/models/api"
	applicationapimodels "ats-backend/models/api/application"
	dbmodels "ats-backend/models/db"

	"github.com/gofiber/fiber/v2"
)

type applicationApiController struct {
	controllers.BaseAPIController
}

func InitApplicationApiRouters(app *fiber.App) {
	controller := applicationApiController{}
	app.Route("application", func(router fiber.Router) {
		router.Post("list", controller.list)
		router.Post("", controller.create)
		router.Post("export", controller.export)
		router.Put("interview/:id/complete", controller.interviewComplete)
		router.Route(":id", func(idRouter fiber.Router) {
			idRouter.Get("", controller.get)
			idRouter.Put("", controller.update)
			idRouter.Delete("", controller.archive)
			idRouter.Put("sequence", controller.setSequence)
			idRouter.Get("history", controller.history)
			idRouter.Post("note", controller.addNote)
			idRouter.Get("note/list", controller.listNotes)
			idRouter.Post("rating", controller.addRating)
			idRouter.Get("rating/list", controller.listRatings)
			idRouter.Post("interview", controller.scheduleInterview)
			idRouter.Get("interview/list", controller.listInterviews)
		})
	})
}

// @Summary Application list
// @Tags Application
// @Description Application list
// @Param	body body	 applicationapimodels.ApplicationFilter	true	"request filter body"
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.ScrollerResponse{data=[]applicationapimodels.ApplicationView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/application/list [post]
func (c *applicationApiController) list(ctx *fiber.Ctx) error {
	var payload applicationapimodels.ApplicationFilter
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	list, rowCount, err := application.Instance.List(payload)
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewScrollerResponse(list, rowCount))
}

// @Summary Create an application
// @Tags Application
// @Description Create a candidate application in a recruitment
// @Param	body body	 applicationapimodels.ApplicationData	true	"application body"
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=string}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/application [post]
func (c *applicationApiController) create(ctx *fiber.Ctx) error {
	var payload applicationapimodels.ApplicationData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	id, err := application.Instance.Create(middleware.GetEmployeeID(ctx), payload)
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(id))
}

// @Summary Export applications
// @Tags Application
// @Description Export the filtered application list as an xlsx file
// @Param	body body	 applicationapimodels.ApplicationFilter	true	"request filter body"
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/application/export [post]
func (c *applicationApiController) export(ctx *fiber.Ctx) error {
	var payload applicationapimodels.ApplicationFilter
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	buf, err := application.Instance.Export(payload)
	if err != nil {
		return c.SendError(ctx, err)
	}
	ctx.Set(fiber.HeaderContentDisposition, `attachment; filename="applications.xlsx"`)
	ctx.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	return ctx.Send(buf.Bytes())
}

// @Summary Get an application
// @Tags Application
// @Description Get an application
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "application ID"
// @Success 200 {object} apimodels.Response{data=applicationapimodels.ApplicationView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/application/{id} [get]
func (c *applicationApiController) get(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	view, err := application.Instance.GetByID(id)
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(view))
}

// @Summary Update an application
// @Tags Application
// @Description Update the application profile fields
// @Param	body body	 applicationapimodels.ApplicationData	true	"application body"
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "application ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/application/{id} [put]
func (c *applicationApiController) update(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload applicationapimodels.ApplicationData
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err = payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err = application.Instance.Update(middleware.GetEmployeeID(ctx), id, payload); err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Archive an application
// @Tags Application
// @Description Archive an application
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "application ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/application/{id} [delete]
func (c *applicationApiController) archive(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err = application.Instance.Archive(middleware.GetEmployeeID(ctx), id); err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Set the display sequence
// @Tags Application
// @Description Set the application's display sequence inside its stage column
// @Param	body body	 applicationapimodels.SequenceUpdate	true	"sequence body"
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "application ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/application/{id}/sequence [put]
func (c *applicationApiController) setSequence(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload applicationapimodels.SequenceUpdate
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err = payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err = application.Instance.SetSequence(id, payload.Sequence); err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Application history
// @Tags Application
// @Description Audit trail of an application
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "application ID"
// @Success 200 {object} apimodels.Response{data=[]applicationapimodels.HistoryView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/application/{id}/history [get]
func (c *applicationApiController) history(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	records, err := applicationhistoryhandler.Instance.List(id, dbmodels.ApplicationHistoryFilter{})
	if err != nil {
		return c.SendError(ctx, err)
	}
	list := make([]applicationapimodels.HistoryView, 0, len(records))
	for _, rec := range records {
		list = append(list, applicationapimodels.HistoryConvert(rec))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

// @Summary Add a note
// @Tags Application
// @Description Leave a note on the application's current stage
// @Param	body body	 applicationapimodels.NoteAdd	true	"note body"
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "application ID"
// @Success 200 {object} apimodels.Response{data=string}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/application/{id}/note [post]
func (c *applicationApiController) addNote(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload applicationapimodels.NoteAdd
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err = payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	noteID, err := interview.Instance.AddNote(middleware.GetEmployeeID(ctx), id, payload)
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(noteID))
}

// @Summary Note list
// @Tags Application
// @Description Notes left on the application
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "application ID"
// @Success 200 {object} apimodels.Response{data=[]applicationapimodels.NoteView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/application/{id}/note/list [get]
func (c *applicationApiController) listNotes(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	list, err := interview.Instance.ListNotes(id)
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

// @Summary Rate a skill
// @Tags Application
// @Description Rate one skill on the application, a skill can be rated once
// @Param	body body	 applicationapimodels.RatingAdd	true	"rating body"
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "application ID"
// @Success 200 {object} apimodels.Response{data=string}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/application/{id}/rating [post]
func (c *applicationApiController) addRating(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload applicationapimodels.RatingAdd
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err = payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	ratingID, err := interview.Instance.RateSkill(middleware.GetEmployeeID(ctx), id, payload)
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(ratingID))
}

// @Summary Rating list
// @Tags Application
// @Description Skill ratings of the application
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "application ID"
// @Success 200 {object} apimodels.Response{data=[]applicationapimodels.RatingView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/application/{id}/rating/list [get]
func (c *applicationApiController) listRatings(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	list, err := interview.Instance.ListRatings(id)
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

// @Summary Schedule an interview
// @Tags Application
// @Description Schedule an interview on the application's current stage
// @Param	body body	 applicationapimodels.InterviewAdd	true	"interview body"
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "application ID"
// @Success 200 {object} apimodels.Response{data=string}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/application/{id}/interview [post]
func (c *applicationApiController) scheduleInterview(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload applicationapimodels.InterviewAdd
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err = payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	interviewID, err := interview.Instance.Schedule(middleware.GetEmployeeID(ctx), id, payload)
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(interviewID))
}

// @Summary Interview list
// @Tags Application
// @Description Interviews scheduled for the application
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "application ID"
// @Success 200 {object} apimodels.Response{data=[]applicationapimodels.InterviewView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/application/{id}/interview/list [get]
func (c *applicationApiController) listInterviews(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	list, err := interview.Instance.ListInterviews(id)
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

// @Summary Complete an interview
// @Tags Application
// @Description Mark an interview as completed
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "interview ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/application/interview/{id}/complete [put]
func (c *applicationApiController) interviewComplete(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err = interview.Instance.Complete(id); err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}
