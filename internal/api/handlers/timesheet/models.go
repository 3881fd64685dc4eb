package timesheet

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SalonBooking/internal/service/shifts/models"
)

// parseRequest query: startDate, endDate, shopId, teamMemberIds=1,2,3
func parseRequest(r *http.Request) (*models.TimesheetRequest, error) {
	startDate, err := handlers.QueryDate(r, "startDate")
	if err != nil {
		return nil, err
	}
	endDate, err := handlers.QueryDate(r, "endDate")
	if err != nil {
		return nil, err
	}
	shopID, err := handlers.QueryID(r, "shopId")
	if err != nil {
		return nil, err
	}

	req := &models.TimesheetRequest{
		ShopID:    shopID,
		StartDate: startDate,
		EndDate:   endDate,
	}

	if raw := r.URL.Query().Get("teamMemberIds"); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			id, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
			if err != nil || id <= 0 {
				return nil, fmt.Errorf("invalid teamMemberIds %q", raw)
			}
			req.TeamMemberIDs = append(req.TeamMemberIDs, id)
		}
	}

	return req, nil
}
