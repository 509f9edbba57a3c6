package handlers

import (
	"net/http"
	"time"

	"github.com/SAP-F-2025/llm-dissector/internal/catalog"
	"github.com/SAP-F-2025/llm-dissector/internal/services"
	"github.com/SAP-F-2025/llm-dissector/internal/utils"
	"github.com/gin-gonic/gin"
)

const excelContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type CatalogHandler struct {
	BaseHandler
	catalogService services.CatalogService
	exportService  services.ExportService
}

func NewCatalogHandler(catalogService services.CatalogService, exportService services.ExportService, logger utils.Logger) *CatalogHandler {
	return &CatalogHandler{
		BaseHandler:    NewBaseHandler(logger),
		catalogService: catalogService,
		exportService:  exportService,
	}
}

// ListStages lists the stages without prompts or answer keys
// @Summary List stages
// @Tags catalog
// @Produce json
// @Success 200 {array} services.StageSummary
// @Router /stages [get]
func (h *CatalogHandler) ListStages(c *gin.Context) {
	c.JSON(http.StatusOK, h.catalogService.ListStages(c.Request.Context()))
}

// ListQuizOptions lists the quiz option labels in catalog order
// @Summary List quiz options
// @Tags catalog
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /quiz-options [get]
func (h *CatalogHandler) ListQuizOptions(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"prompt":  catalog.QuizPrompt,
		"options": h.catalogService.ListQuizOptions(c.Request.Context()),
	})
}

// ListPresets lists the sample questions
// @Summary List presets
// @Tags catalog
// @Produce json
// @Success 200 {array} models.Preset
// @Router /presets [get]
func (h *CatalogHandler) ListPresets(c *gin.Context) {
	c.JSON(http.StatusOK, h.catalogService.ListPresets(c.Request.Context()))
}

// ExportCatalog downloads the answer sheet
// @Summary Export catalog
// @Tags catalog
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param X-Admin-Token header string true "Admin token"
// @Success 200 {file} file
// @Failure 403 {object} ErrorResponse
// @Router /catalog/export [get]
func (h *CatalogHandler) ExportCatalog(c *gin.Context) {
	data, err := h.exportService.ExportCatalogToExcel(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	filename := "llm-dissector-catalog-" + time.Now().UTC().Format("20060102") + ".xlsx"
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, excelContentType, data)
}
