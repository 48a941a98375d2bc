package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/cliniqa/clinic-attendance/internal/httperr"
	"github.com/cliniqa/clinic-attendance/internal/httpresp"
	"github.com/cliniqa/clinic-attendance/internal/middleware"
	ucAttendance "github.com/cliniqa/clinic-attendance/internal/usecase/attendance"
)

type TokenHandler struct {
	currentToken *ucAttendance.CurrentToken
	issueToken   *ucAttendance.IssueToken
}

func NewTokenHandler(
	currentToken *ucAttendance.CurrentToken,
	issueToken *ucAttendance.IssueToken,
) *TokenHandler {
	return &TokenHandler{
		currentToken: currentToken,
		issueToken:   issueToken,
	}
}

// --------- Requests ---------

type IssueTokenRequest struct {
	BranchID      uint     `json:"branch_id"`
	RefreshPeriod string   `json:"refresh_period" binding:"required,oneof=daily weekly custom"`
	ValidUntil    string   `json:"valid_until"`
	CenterLat     *float64 `json:"center_lat"`
	CenterLon     *float64 `json:"center_lon"`
	RadiusMeters  *float64 `json:"radius_meters"`
}

// --------- Handlers ---------

// GetCurrent returns the valid token for the tenant scope; the caller
// renders the secret into a scannable code.
func (h *TokenHandler) GetCurrent(c *gin.Context) {
	clinicID := c.MustGet(middleware.ContextClinicID).(uint)

	branchID := uint(0)
	if v := c.Query("branch_id"); v != "" {
		n, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			httperr.BadRequest(c, "invalid_branch_id", "Branch ID must be numeric.")
			return
		}
		branchID = uint(n)
	}

	tok, err := h.currentToken.Execute(c.Request.Context(), clinicID, branchID)
	if err != nil {
		if httperr.IsBusiness(err, "no_active_token") {
			httperr.NotFound(c, "no_active_token", "No valid QR token; issue one or enable auto-rotation.")
			return
		}
		httperr.Internal(c, "token_lookup_failed", "Could not load the current token.")
		return
	}

	httpresp.OK(c, tok)
}

func (h *TokenHandler) Issue(c *gin.Context) {
	clinicID := c.MustGet(middleware.ContextClinicID).(uint)
	employeeID := c.MustGet(middleware.ContextEmployeeID).(uint)

	var req IssueTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid token request.")
		return
	}

	in := ucAttendance.IssueTokenInput{
		ClinicID:      clinicID,
		BranchID:      req.BranchID,
		RefreshPeriod: req.RefreshPeriod,
		CenterLat:     req.CenterLat,
		CenterLon:     req.CenterLon,
		RadiusMeters:  req.RadiusMeters,
		IssuedBy:      employeeID,
	}

	if req.ValidUntil != "" {
		until, err := time.Parse(time.RFC3339, req.ValidUntil)
		if err != nil {
			httperr.BadRequest(c, "invalid_valid_until", "valid_until must be RFC3339.")
			return
		}
		in.ValidUntil = &until
	}

	tok, err := h.issueToken.Execute(c.Request.Context(), in)
	if err != nil {
		switch {
		case httperr.IsBusiness(err, "invalid_refresh_period"),
			httperr.IsBusiness(err, "invalid_valid_until"),
			httperr.IsBusiness(err, "invalid_coordinates"),
			httperr.IsBusiness(err, "invalid_radius"):
			httperr.BadRequest(c, err.Error(), "Invalid token parameters.")
		case httperr.IsBusiness(err, "token_cycle_conflict"):
			httperr.Conflict(c, "token_cycle_conflict", "A token for this cycle was just issued.")
		default:
			httperr.Internal(c, "token_issue_failed", "Could not issue the token.")
		}
		return
	}

	httpresp.Created(c, tok)
}
