package apiv1

import (
	"ats-backend/controllers"
	"ats-backend/lib/pipeline"
	pipelineview "ats-backend/lib/pipeline-view"
	"ats-backend/middleware"
	apimodels "ats-backend/models/api"
	pipelineapimodels "ats-backend/models/api/pipeline"

	"github.com/gofiber/fiber/v2"
)

type pipelineApiController struct {
	controllers.BaseAPIController
}

func InitPipelineApiRouters(app *fiber.App) {
	controller := pipelineApiController{}
	app.Route("pipeline", func(router fiber.Router) {
		router.Get("board/:id", controller.board)
		router.Put("move", controller.move)
		router.Put("reorder", controller.reorder)
		router.Put("bulk_move", controller.bulkMove)
		router.Put("cancel", controller.cancel)
		router.Put(":id/convert", controller.convert)
	})
}

// @Summary Kanban board
// @Tags Pipeline
// @Description Kanban projection of a recruitment, stage columns in pipeline order
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "recruitment ID"
// @Success 200 {object} apimodels.Response{data=pipelineapimodels.BoardView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/pipeline/board/{id} [get]
func (c *pipelineApiController) board(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	board, err := pipelineview.Instance.Board(id)
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(board))
}

// @Summary Move an application
// @Tags Pipeline
// @Description Move an application to another stage of its recruitment
// @Param	body body	 pipelineapimodels.MoveRequest	true	"move body"
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=pipelineapimodels.MoveResult}
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/pipeline/move [put]
func (c *pipelineApiController) move(ctx *fiber.Ctx) error {
	var payload pipelineapimodels.MoveRequest
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	result, err := pipeline.Instance.MoveStage(middleware.GetEmployeeID(ctx), payload.ApplicationID, payload.StageID)
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(result))
}

// @Summary Reorder a stage column
// @Tags Pipeline
// @Description Rewrite the display order of one stage column, pulling in applications from other stages
// @Param	body body	 pipelineapimodels.ReorderRequest	true	"reorder body"
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=pipelineapimodels.MoveResult}
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/pipeline/reorder [put]
func (c *pipelineApiController) reorder(ctx *fiber.Ctx) error {
	var payload pipelineapimodels.ReorderRequest
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	result, err := pipeline.Instance.Reorder(middleware.GetEmployeeID(ctx), payload.StageID, payload.ApplicationIDs)
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(result))
}

// @Summary Bulk move applications
// @Tags Pipeline
// @Description Move several applications to one stage, each moved independently
// @Param	body body	 pipelineapimodels.BulkMoveRequest	true	"bulk move body"
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=[]pipelineapimodels.BulkItemResult}
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/pipeline/bulk_move [put]
func (c *pipelineApiController) bulkMove(ctx *fiber.Ctx) error {
	var payload pipelineapimodels.BulkMoveRequest
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	results, err := pipeline.Instance.BulkMove(middleware.GetEmployeeID(ctx), payload.StageID, payload.ApplicationIDs)
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(results))
}

// @Summary Cancel applications
// @Tags Pipeline
// @Description Move applications to the cancelled stage of their recruitment, creating it on first use
// @Param	body body	 pipelineapimodels.CancelRequest	true	"cancel body"
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=[]pipelineapimodels.BulkItemResult}
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/pipeline/cancel [put]
func (c *pipelineApiController) cancel(ctx *fiber.Ctx) error {
	var payload pipelineapimodels.CancelRequest
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	results, err := pipeline.Instance.Cancel(middleware.GetEmployeeID(ctx), payload.ApplicationIDs)
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(results))
}

// @Summary Convert to employee
// @Tags Pipeline
// @Description Create an employee record from the application and mark it converted
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "application ID"
// @Success 200 {object} apimodels.Response{data=string}
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/pipeline/{id}/convert [put]
func (c *pipelineApiController) convert(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	employeeID, err := pipeline.Instance.ConvertToEmployee(middleware.GetEmployeeID(ctx), id)
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(employeeID))
}
