package dto

// ── bulk account DTOs ──

// BulkCreateRequest create accounts for a class's imported roster.
type BulkCreateRequest struct {
	ClassID     string `json:"class_id"`
	EmailDomain string `json:"email_domain"`
}

// BulkAccount one account reported by the admin_users function.
type BulkAccount struct {
	FullName string `json:"ho_ten"`
	Code     string `json:"ma_sinh_vien"`
	Email    string `json:"email"`
	Password string `json:"password,omitempty"`
	Status   string `json:"status,omitempty"`
}

// BulkResult raw result of action bulk_from_class.
type BulkResult struct {
	Created    []BulkAccount `json:"created"`
	Recovered  []BulkAccount `json:"recovered"`
	Reason     string        `json:"reason,omitempty"`
	SheetOK    *bool         `json:"sheetOk,omitempty"`
	SheetError string        `json:"sheetError,omitempty"`
}

// BulkRow one display row. Display holds the password, or the status when
// there is none.
type BulkRow struct {
	Outcome  string `json:"outcome"` // created | recovered
	FullName string `json:"full_name"`
	Code     string `json:"code"`
	Email    string `json:"email"`
	Password string `json:"password,omitempty"`
	Display  string `json:"display"`
}

// SheetOutcome how the spreadsheet copy of created accounts went.
type SheetOutcome struct {
	Result  string `json:"result"` // ok | error | not_configured
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

// BulkAccountsResponse normalised bulk reconciliation view.
type BulkAccountsResponse struct {
	Rows         []BulkRow     `json:"rows"`
	Total        int           `json:"total"`
	Created      int           `json:"created"`
	Recovered    int           `json:"recovered"`
	Reason       string        `json:"reason,omitempty"`
	Message      string        `json:"message"`
	Sheet        *SheetOutcome `json:"sheet,omitempty"`
	ClipboardTSV string        `json:"clipboard_tsv,omitempty"`
}

// ── account distribution DTOs ──

// DistributionRequest filter for handed-out accounts.
type DistributionRequest struct {
	Class  string `form:"class"`
	Search string `form:"q" binding:"omitempty,max=100"`
}

// DistributionClass a class option derived from the sheet.
type DistributionClass struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// DistributionRow one generated account from the sheet.
type DistributionRow struct {
	ID        int64  `json:"id"`
	ClassID   string `json:"class_id"`
	ClassName string `json:"class_name"`
	FullName  string `json:"full_name"`
	Code      string `json:"code"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Handed    bool   `json:"handed"`
	CreatedAt string `json:"created_at,omitempty"`
}

// DistributionResponse accounts split by hand-out state.
type DistributionResponse struct {
	Classes        []DistributionClass `json:"classes"`
	Distributed    []DistributionRow   `json:"distributed"`
	NotDistributed []DistributionRow   `json:"not_distributed"`
	Total          int                 `json:"total"`
}
