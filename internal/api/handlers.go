package api

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"coursedash/internal/dashboard"
	"coursedash/internal/engine"
	"coursedash/internal/models"
	"coursedash/internal/report"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type Handler struct {
	driver    *dashboard.Driver
	charts    report.PNGRenderer
	maxUpload int64
	logger    *zap.Logger
}

func NewHandler(driver *dashboard.Driver, charts report.PNGRenderer, maxUpload int64, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{driver: driver, charts: charts, maxUpload: maxUpload, logger: logger}
}

func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.GET("/", h.Index)
	e.POST("/", h.Dashboard)
	e.GET("/health", h.Health)
	e.POST("/charts/:name", h.GetChartPNG)

	api := e.Group("/api")
	api.POST("/report", h.GetReport)
	api.POST("/regions/:region/rows", h.GetRegionRows)
}

// --- HELPERS ---

// uploadedFile reads the "file" form field. A request without one yields
// an empty NamedFile, which the driver treats as "no file yet".
func (h *Handler) uploadedFile(c echo.Context) (*dashboard.NamedFile, error) {
	req := c.Request()
	req.Body = http.MaxBytesReader(c.Response(), req.Body, h.maxUpload)

	header, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.Is(err, http.ErrMissingFile), errors.Is(err, http.ErrNotMultipart):
			return &dashboard.NamedFile{}, nil
		case errors.As(err, &tooLarge):
			return nil, echo.NewHTTPError(http.StatusRequestEntityTooLarge, "arquivo excede o limite de upload")
		}
		return nil, echo.NewHTTPError(http.StatusBadRequest, "falha ao ler o upload").SetInternal(err)
	}

	f, err := header.Open()
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "falha ao abrir o arquivo").SetInternal(err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "falha ao ler o arquivo").SetInternal(err)
	}
	return &dashboard.NamedFile{Name: header.Filename, Data: data}, nil
}

// run executes one pass for the request's upload. A pass without a file
// or with a load error comes back as an *echo.HTTPError.
func (h *Handler) run(c echo.Context) (*dashboard.Collector, *dashboard.Pass, string, error) {
	upload, err := h.uploadedFile(c)
	if err != nil {
		return nil, nil, "", err
	}

	host := &dashboard.Collector{}
	state, pass, err := h.driver.Run(upload, host)
	if err != nil {
		return host, nil, upload.Name, echo.NewHTTPError(statusFor(err), err.Error()).SetInternal(err)
	}
	if state == dashboard.StateAwaitingFile {
		return host, nil, "", echo.NewHTTPError(http.StatusBadRequest, dashboard.PromptMessage)
	}
	return host, pass, upload.Name, nil
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, engine.ErrFormat):
		return http.StatusBadRequest
	case errors.Is(err, engine.ErrSchema):
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

func getPaginationParams(c echo.Context, defaultLimit int) (int, int) {
	limit, err := strconv.Atoi(c.QueryParam("limit"))
	if err != nil || limit <= 0 {
		limit = defaultLimit
	}
	offset, err := strconv.Atoi(c.QueryParam("offset"))
	if err != nil || offset < 0 {
		offset = 0
	}
	return limit, offset
}

// --- HANDLERS ---

func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "healthy"})
}

// GetReport returns every artifact of a pass as JSON.
func (h *Handler) GetReport(c echo.Context) error {
	host, pass, name, err := h.run(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, host.Report(pass, name))
}

// GetRegionRows returns a page of one region's table.
func (h *Handler) GetRegionRows(c echo.Context) error {
	region := models.ParseRegion(c.Param("region"))
	if !region.Valid() {
		return echo.NewHTTPError(http.StatusNotFound, "região desconhecida: "+c.Param("region"))
	}

	host, _, _, err := h.run(c)
	if err != nil {
		return err
	}
	table, _ := host.RegionTable(region)

	total := len(table.Rows)
	limit, offset := getPaginationParams(c, total)
	rows := [][]string{}
	if offset < total {
		end := offset + limit
		if end > total {
			end = total
		}
		rows = table.Rows[offset:end]
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"region":  table.Region,
		"columns": table.Columns,
		"data":    rows,
		"total":   total,
		"limit":   limit,
		"offset":  offset,
	})
}

// GetChartPNG renders "overall.png", "comparative.png" or "region-G<n>.png".
func (h *Handler) GetChartPNG(c echo.Context) error {
	name := strings.TrimSuffix(c.Param("name"), ".png")

	host, _, _, err := h.run(c)
	if err != nil {
		return err
	}

	spec, ok := pickChart(host.Charts, name)
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "gráfico desconhecido: "+name)
	}

	var buf bytes.Buffer
	if err := h.charts.Render(&buf, spec); err != nil {
		if errors.Is(err, report.ErrEmptyChart) {
			return c.NoContent(http.StatusNoContent)
		}
		h.logger.Error("Chart render failed", zap.String("chart", name), zap.Error(err))
		return echo.NewHTTPError(http.StatusInternalServerError, "falha ao desenhar o gráfico").SetInternal(err)
	}
	return c.Blob(http.StatusOK, "image/png", buf.Bytes())
}

func pickChart(charts []models.ChartSpec, name string) (models.ChartSpec, bool) {
	if facet, ok := strings.CutPrefix(name, "region-"); ok {
		for _, spec := range charts {
			if spec.ID == report.ChartByRegion {
				return report.Facet(spec, facet)
			}
		}
		return models.ChartSpec{}, false
	}
	if name == report.ChartByRegion {
		return models.ChartSpec{}, false
	}
	for _, spec := range charts {
		if spec.ID == name {
			return spec, true
		}
	}
	return models.ChartSpec{}, false
}
