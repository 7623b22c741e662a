package http

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"repo-event-relay/pkg/response"
)

// Notify godoc
// @Summary     Notify about a GitHub event
// @Description Filters, deduplicates by PR number and posts the event to Slack. Handled cases always answer 200.
// @Tags        Notify
// @Accept      json
// @Produce     json
// @Param       body body object true "Normalized event"
// @Success     200  {object} notifyResp
// @Failure     400  {object} response.ErrorResp "Bad Request"
// @Failure     500  {object} response.ErrorResp "Internal Server Error"
// @Router      /notify [POST]
func (h *handler) Notify(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processNotifyReq(c)
	if err != nil {
		h.l.Warnf(ctx, "notify.http.Notify: %v", err)
		code, msg := h.mapError(err)
		response.ErrorJSON(c, code, msg)
		return
	}

	decision, err := h.uc.OnEvent(ctx, req.toPayload())
	if err != nil {
		h.l.Errorf(ctx, "uc.OnEvent: %v", err)
		code, msg := h.mapError(err)
		response.ErrorJSON(c, code, msg)
		return
	}

	c.JSON(http.StatusOK, h.newNotifyResp(decision))
}

// Interact godoc
// @Summary     Slack interactive callback
// @Description Runs the merge or cancel flow for a clicked Merge/Cancel button.
// @Tags        Notify
// @Accept      x-www-form-urlencoded
// @Produce     json
// @Param       payload formData string true "Slack interaction payload (JSON)"
// @Success     200 {object} interactResp
// @Failure     400 {object} response.ErrorResp "Bad Request"
// @Failure     401 {object} response.ErrorResp "Invalid Slack signature"
// @Failure     500 {object} response.ErrorResp "Internal Server Error"
// @Router      /slack/interact [POST]
func (h *handler) Interact(c *gin.Context) {
	ctx := c.Request.Context()

	defer func() {
		if r := recover(); r != nil {
			h.l.Errorf(ctx, "notify.http.Interact: panic: %v", r)
			response.AbortErrorJSON(c, http.StatusInternalServerError, fmt.Sprint(r))
		}
	}()

	req, err := h.processInteractReq(c)
	if err != nil {
		h.l.Warnf(ctx, "notify.http.Interact: %v", err)
		code, msg := h.mapError(err)
		response.ErrorJSON(c, code, msg)
		return
	}

	output, err := h.uc.OnInteraction(ctx, req.toInput())
	if err != nil {
		h.l.Errorf(ctx, "uc.OnInteraction: %v", err)
		code, msg := h.mapError(err)
		response.ErrorJSON(c, code, msg)
		return
	}

	c.JSON(http.StatusOK, h.newInteractResp(output))
}
