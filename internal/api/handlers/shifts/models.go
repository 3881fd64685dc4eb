package shifts

// ClockInRequest HTTP request model
type ClockInRequest struct {
	ShopID int64 `json:"shopId"`
}

// MarkPaidRequest HTTP request model
type MarkPaidRequest struct {
	ShiftIDs []int64 `json:"shiftIds"`
}
