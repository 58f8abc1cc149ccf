package apiv1

import (
	"ats-backend/controllers"
	"ats-backend/lib/recruitment"
	stagegraph "ats-backend/lib/stage-graph"
	apimodels "ats-backend/models/api"
	recruitmentapimodels "ats-backend/models/api/recruitment"

	"github.com/gofiber/fiber/v2"
)

type recruitmentApiController struct {
	controllers.BaseAPIController
}

func InitRecruitmentApiRouters(app *fiber.App) {
	controller := recruitmentApiController{}
	app.Route("recruitment", func(router fiber.Router) {
		router.Post("list", controller.list)
		router.Post("", controller.create)
		router.Route(":id", func(idRouter fiber.Router) {
			idRouter.Get("", controller.get)
			idRouter.Put("", controller.update)
			idRouter.Delete("", controller.archive)
			idRouter.Put("close", controller.close)
			idRouter.Put("reopen", controller.reopen)
			idRouter.Route("stage", func(stageRouter fiber.Router) {
				stageRouter.Get("list", controller.stageList)
				stageRouter.Post("", controller.stageCreate)
				stageRouter.Delete(":stage_id", controller.stageDelete)
				stageRouter.Put("change_order", controller.stageChangeOrder)
				stageRouter.Put("update_assignments", controller.stageUpdateAssignments)
			})
		})
	})
}

// @Summary Recruitment list
// @Tags Recruitment
// @Description Recruitment list
// @Param	body body	 recruitmentapimodels.RecruitmentFilter	true	"request filter body"
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.ScrollerResponse{data=[]recruitmentapimodels.RecruitmentView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/recruitment/list [post]
func (c *recruitmentApiController) list(ctx *fiber.Ctx) error {
	var payload recruitmentapimodels.RecruitmentFilter
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	list, rowCount, err := recruitment.Instance.List(payload)
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewScrollerResponse(list, rowCount))
}

// @Summary Create a recruitment
// @Tags Recruitment
// @Description Create a recruitment with its open positions, team and the default stage pipeline
// @Param	body body	 recruitmentapimodels.RecruitmentData	true	"recruitment body"
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=string}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/recruitment [post]
func (c *recruitmentApiController) create(ctx *fiber.Ctx) error {
	var payload recruitmentapimodels.RecruitmentData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	id, err := recruitment.Instance.Create(payload)
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(id))
}

// @Summary Get a recruitment
// @Tags Recruitment
// @Description Get a recruitment with its ordered stage pipeline
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "recruitment ID"
// @Success 200 {object} apimodels.Response{data=recruitmentapimodels.RecruitmentView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/recruitment/{id} [get]
func (c *recruitmentApiController) get(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	view, err := recruitment.Instance.GetByID(id)
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(view))
}

// @Summary Update a recruitment
// @Tags Recruitment
// @Description Update a recruitment, its open positions and team
// @Param	body body	 recruitmentapimodels.RecruitmentData	true	"recruitment body"
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "recruitment ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/recruitment/{id} [put]
func (c *recruitmentApiController) update(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload recruitmentapimodels.RecruitmentData
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err = payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err = recruitment.Instance.Update(id, payload); err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Archive a recruitment
// @Tags Recruitment
// @Description Archive a recruitment
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "recruitment ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/recruitment/{id} [delete]
func (c *recruitmentApiController) archive(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err = recruitment.Instance.Archive(id); err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Close a recruitment
// @Tags Recruitment
// @Description Stop accepting applications, the existing pipeline keeps working
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "recruitment ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/recruitment/{id}/close [put]
func (c *recruitmentApiController) close(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err = recruitment.Instance.Close(id); err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Reopen a recruitment
// @Tags Recruitment
// @Description Reopen a closed recruitment
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "recruitment ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/recruitment/{id}/reopen [put]
func (c *recruitmentApiController) reopen(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err = recruitment.Instance.Reopen(id); err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Stage list
// @Tags Recruitment
// @Description Ordered stage pipeline of a recruitment
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "recruitment ID"
// @Success 200 {object} apimodels.Response{data=[]recruitmentapimodels.StageView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/recruitment/{id}/stage/list [get]
func (c *recruitmentApiController) stageList(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	stages, err := stagegraph.Instance.OrderedStages(id)
	if err != nil {
		return c.SendError(ctx, err)
	}
	list := make([]recruitmentapimodels.StageView, 0, len(stages))
	for _, stage := range stages {
		list = append(list, recruitmentapimodels.StageConvert(stage))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

// @Summary Create a stage
// @Tags Recruitment
// @Description Append a stage to the recruitment pipeline
// @Param	body body	 recruitmentapimodels.StageAdd	true	"stage body"
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "recruitment ID"
// @Success 200 {object} apimodels.Response{data=string}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/recruitment/{id}/stage [post]
func (c *recruitmentApiController) stageCreate(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload recruitmentapimodels.StageAdd
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err = payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	stageID, err := stagegraph.Instance.StageCreate(id, payload)
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(stageID))
}

// @Summary Delete a stage
// @Tags Recruitment
// @Description Delete an empty stage from the pipeline
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "recruitment ID"
// @Param   stage_id    		path    string  				    	true         "stage ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/recruitment/{id}/stage/{stage_id} [delete]
func (c *recruitmentApiController) stageDelete(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	stageID := ctx.Params("stage_id")
	if stageID == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError("stage id is required"))
	}
	if err = stagegraph.Instance.StageDelete(id, stageID); err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Change the stage order
// @Tags Recruitment
// @Description Move a stage to a new position and renumber the pipeline
// @Param	body body	 recruitmentapimodels.StageOrderChange	true	"order change body"
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "recruitment ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/recruitment/{id}/stage/change_order [put]
func (c *recruitmentApiController) stageChangeOrder(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload recruitmentapimodels.StageOrderChange
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err = payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err = stagegraph.Instance.StageChangeOrder(id, payload.StageID, payload.NewOrder); err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Re-apply stage assignments
// @Tags Recruitment
// @Description Re-apply the team-derived manager and interviewer sets to the existing stages
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "recruitment ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/recruitment/{id}/stage/update_assignments [put]
func (c *recruitmentApiController) stageUpdateAssignments(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err = recruitment.Instance.SyncStageAssignments(id); err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}
