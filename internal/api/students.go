package api

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/insightdelivered/campus-fund-tracker/internal/export"
	"github.com/insightdelivered/campus-fund-tracker/internal/lookup"
	"github.com/insightdelivered/campus-fund-tracker/internal/models"
	"github.com/insightdelivered/campus-fund-tracker/internal/query"
	"github.com/insightdelivered/campus-fund-tracker/internal/roster"
)

type studentsResponse struct {
	Success      bool                   `json:"success"`
	Items        []models.StudentRecord `json:"items"`
	TotalMatched int                    `json:"totalMatched"`
	TotalPages   int                    `json:"totalPages"`
	Page         int                    `json:"page"`
	Load         roster.LoadInfo        `json:"load"`
}

// HandleStudents computes one page of the listing from the query string.
func (h *Handler) HandleStudents(c *fiber.Ctx) error {
	if err := h.ensureLoaded(c); err != nil {
		return writeError(c, fiber.StatusBadGateway, "Error loading data. Please check your connection and try again.")
	}

	page := query.View(h.Store.All(), h.queryState(c))
	return c.JSON(studentsResponse{
		Success:      true,
		Items:        page.Items,
		TotalMatched: page.TotalMatched,
		TotalPages:   page.TotalPages,
		Page:         page.Page,
		Load:         h.Store.Info(),
	})
}

type detailResponse struct {
	Success bool                 `json:"success"`
	Student models.StudentRecord `json:"student"`
}

// HandleStudentDetail resolves one student directly against a fresh sheet
// fetch; the detail flow never normalizes the whole roster. On a miss the
// response carries a redirect hint back to the listing.
func (h *Handler) HandleStudentDetail(c *fiber.Ctx) error {
	id := strings.TrimSpace(c.Params("id"))
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(errorBody{
			Success: false, Error: "Student ID not provided.", Redirect: "/",
		})
	}

	text, err := h.Fetcher.Fetch(c.UserContext())
	if err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(errorBody{
			Success: false, Error: "Error loading data. Please try again later.", Redirect: "/",
		})
	}

	rec, err := lookup.FindByID(text, id, h.Now())
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(errorBody{
			Success: false, Error: "Student not found.", Redirect: "/",
		})
	}

	return c.JSON(detailResponse{Success: true, Student: rec})
}

type refreshResponse struct {
	Success bool            `json:"success"`
	Load    roster.LoadInfo `json:"load"`
	Note    string          `json:"note,omitempty"`
}

// HandleRefresh refetches the sheet and swaps the roster. Overlapping
// refreshes both run to completion; the last swap wins.
func (h *Handler) HandleRefresh(c *fiber.Ctx) error {
	info, err := h.LoadRoster(c.UserContext(), h.Now())
	if err != nil {
		return writeError(c, fiber.StatusBadGateway, "Error loading data. Please check your connection and try again.")
	}

	resp := refreshResponse{Success: true, Load: info}
	if info.Source == roster.SourceSample {
		resp.Note = "Sample data loaded for demonstration"
	}
	return c.JSON(resp)
}

// HandleStats reports the dashboard summary counters.
func (h *Handler) HandleStats(c *fiber.Ctx) error {
	if err := h.ensureLoaded(c); err != nil {
		return writeError(c, fiber.StatusBadGateway, "Error loading data. Please check your connection and try again.")
	}
	return c.JSON(fiber.Map{
		"success": true,
		"stats":   query.Summarize(h.Store.All()),
		"load":    h.Store.Info(),
	})
}

// HandleExport streams the current (filtered, sorted) view as a CSV
// download. Pagination is ignored: an export always covers every match.
func (h *Handler) HandleExport(c *fiber.Ctx) error {
	if err := h.ensureLoaded(c); err != nil {
		return writeError(c, fiber.StatusBadGateway, "Error loading data. Please check your connection and try again.")
	}

	st := h.queryState(c)
	st.Page = 1
	st.PageSize = query.PageSizeAll
	page := query.View(h.Store.All(), st)

	var buf bytes.Buffer
	w := &export.Writer{IncludeMeta: true}
	if err := w.Write(&buf, h.Store.Info(), page.Items); err != nil {
		return writeError(c, fiber.StatusInternalServerError, "CSV generation failed.")
	}

	c.Set(fiber.HeaderContentType, "text/csv")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="campus-fund-roster.csv"`)
	return c.Send(buf.Bytes())
}

// queryState parses the view query parameters, falling back to the
// listing defaults on anything unrecognized.
func (h *Handler) queryState(c *fiber.Ctx) query.State {
	filter := query.CategoryFilter(c.Query("filter", string(query.FilterAll)))
	switch filter {
	case query.FilterAll, query.FilterCurrent, query.FilterPrevious, query.FilterPaid, query.FilterUnpaid:
	default:
		filter = query.FilterAll
	}

	dir := query.SortDirection(c.Query("dir", string(query.SortAsc)))
	if dir != query.SortDesc {
		dir = query.SortAsc
	}

	pageSize := h.Cfg.DefaultPageSize
	if raw := c.Query("pageSize"); raw != "" {
		if raw == "all" {
			pageSize = query.PageSizeAll
		} else if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			pageSize = n
		}
	}

	return query.State{
		Search:   c.Query("search"),
		Filter:   filter,
		SortKey:  c.Query("sort", "id"),
		SortDir:  dir,
		Page:     c.QueryInt("page", 1),
		PageSize: pageSize,
	}
}
