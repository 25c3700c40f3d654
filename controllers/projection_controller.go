package controllers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"rentvsbuy/services"
	"rentvsbuy/types"

	"github.com/creasty/defaults"
	"github.com/getsentry/sentry-go"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ProjectionControllerI interface {
	ShowForm(ctx *gin.Context)
	Compare(ctx *gin.Context)
	ExportForm(ctx *gin.Context)
	Project(ctx *gin.Context)
	Export(ctx *gin.Context)
}

type projectionController struct {
	projections services.ProjectionServiceI
	exports     services.ExportServiceI
}

func NewProjectionController(projections services.ProjectionServiceI, exports services.ExportServiceI) ProjectionControllerI {
	return &projectionController{projections: projections, exports: exports}
}

type pageData struct {
	Form       types.FormInputs
	Terms      []int
	Columns    []string
	Projection *types.Projection
	Errors     []string
}

func newPage(form types.FormInputs) pageData {
	return pageData{Form: form, Terms: types.MortgageTerms, Columns: types.ComparisonColumns}
}

// ShowForm renders the input form seeded with the default assumptions.
func (p *projectionController) ShowForm(ctx *gin.Context) {
	var form types.FormInputs
	if err := defaults.Set(&form); err != nil {
		zap.L().Error("Error applying form defaults", zap.Error(err))
		ctx.String(http.StatusInternalServerError, "Error preparing form")
		return
	}
	ctx.HTML(http.StatusOK, "index.html", newPage(form))
}

// Compare renders the form together with the yearly comparison table.
func (p *projectionController) Compare(ctx *gin.Context) {
	span := sentry.StartSpan(ctx.Request.Context(), "[GIN] Compare", sentry.WithTransactionName("Compare"))
	defer span.Finish()

	var form types.FormInputs
	if err := ctx.ShouldBind(&form); err != nil {
		span.Status = sentry.SpanStatusInvalidArgument
		page := newPage(form)
		page.Errors = bindingMessages(err)
		ctx.HTML(http.StatusBadRequest, "index.html", page)
		return
	}

	page := newPage(form)
	projection, err := p.projections.Project(span.Context(), form.ToFinancialInputs())
	if err != nil {
		span.Status = sentry.SpanStatusInvalidArgument
		page.Errors = []string{err.Error()}
		ctx.HTML(statusFor(err), "index.html", page)
		return
	}

	span.Status = sentry.SpanStatusOK
	page.Projection = &projection
	ctx.HTML(http.StatusOK, "index.html", page)
}

// ExportForm downloads the comparison table for the submitted form as XLSX.
func (p *projectionController) ExportForm(ctx *gin.Context) {
	span := sentry.StartSpan(ctx.Request.Context(), "[GIN] ExportForm", sentry.WithTransactionName("ExportForm"))
	defer span.Finish()

	var form types.FormInputs
	if err := ctx.ShouldBind(&form); err != nil {
		span.Status = sentry.SpanStatusInvalidArgument
		ctx.JSON(http.StatusBadRequest, gin.H{"error": bindingMessages(err)})
		return
	}
	p.writeWorkbook(ctx, span, form.ToFinancialInputs())
}

// Project answers a JSON FinancialInputs record with its projection.
func (p *projectionController) Project(ctx *gin.Context) {
	span := sentry.StartSpan(ctx.Request.Context(), "[GIN] Project", sentry.WithTransactionName("Project"))
	defer span.Finish()

	var in types.FinancialInputs
	if err := ctx.ShouldBindJSON(&in); err != nil {
		span.Status = sentry.SpanStatusInvalidArgument
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	projection, err := p.projections.Project(span.Context(), in)
	if err != nil {
		p.fail(ctx, span, err)
		return
	}

	span.Status = sentry.SpanStatusOK
	ctx.JSON(http.StatusOK, types.ProjectionResponse{
		Inputs:     in,
		Projection: projection,
		Rows:       projection.Rows(),
	})
}

// Export answers a JSON FinancialInputs record with the XLSX workbook.
func (p *projectionController) Export(ctx *gin.Context) {
	span := sentry.StartSpan(ctx.Request.Context(), "[GIN] Export", sentry.WithTransactionName("Export"))
	defer span.Finish()

	var in types.FinancialInputs
	if err := ctx.ShouldBindJSON(&in); err != nil {
		span.Status = sentry.SpanStatusInvalidArgument
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	p.writeWorkbook(ctx, span, in)
}

func (p *projectionController) writeWorkbook(ctx *gin.Context, span *sentry.Span, in types.FinancialInputs) {
	projection, err := p.projections.Project(span.Context(), in)
	if err != nil {
		p.fail(ctx, span, err)
		return
	}

	f, err := p.exports.BuildWorkbook(span.Context(), in, projection)
	if err != nil {
		p.fail(ctx, span, err)
		return
	}
	defer f.Close()

	buf, err := f.WriteToBuffer()
	if err != nil {
		p.fail(ctx, span, fmt.Errorf("error serialising workbook: %w", err))
		return
	}

	filename := uuid.New().String() + ".xlsx"
	ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	span.Status = sentry.SpanStatusOK
	ctx.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

func (p *projectionController) fail(ctx *gin.Context, span *sentry.Span, err error) {
	status := statusFor(err)
	if status == http.StatusUnprocessableEntity {
		span.Status = sentry.SpanStatusInvalidArgument
		ctx.JSON(status, gin.H{"error": err.Error()})
		return
	}

	span.Status = sentry.SpanStatusInternalError
	captureException(span.Context(), err)
	zap.L().Error("Projection request failed", zap.String("path", ctx.Request.URL.Path), zap.Error(err))
	ctx.JSON(status, gin.H{"error": "Internal server error"})
}

func statusFor(err error) int {
	if errors.Is(err, types.ErrInvalidInputs) {
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

func captureException(ctx context.Context, err error) {
	if hub := sentry.GetHubFromContext(ctx); hub != nil {
		hub.CaptureException(err)
		return
	}
	sentry.CaptureException(err)
}

// bindingMessages turns validator failures into one readable line per field.
func bindingMessages(err error) []string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return []string{"Invalid form submission: " + err.Error()}
	}

	messages := make([]string, 0, len(validationErrors))
	for _, fe := range validationErrors {
		switch fe.Tag() {
		case "min":
			messages = append(messages, fmt.Sprintf("%s must not be negative", fe.Field()))
		case "oneof":
			messages = append(messages, fmt.Sprintf("%s must be one of %s", fe.Field(), fe.Param()))
		default:
			messages = append(messages, fmt.Sprintf("%s is invalid", fe.Field()))
		}
	}
	return messages
}
