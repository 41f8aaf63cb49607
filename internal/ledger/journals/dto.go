package journals

import (
	"time"

	"github.com/google/uuid"
)

// postEntryRequest is the JSON body for posting a journal entry.
type postEntryRequest struct {
	Date         string            `json:"transaction_date" validate:"required,datetime=2006-01-02"`
	Description  string            `json:"description" validate:"required,max=500"`
	SourceModule string            `json:"source_module" validate:"required,max=100"`
	SourceID     string            `json:"source_id" validate:"omitempty,uuid"`
	Lines        []postLineRequest `json:"lines" validate:"required,min=2,dive"`
}

// postLineRequest is one leg inside postEntryRequest.
type postLineRequest struct {
	AccountID   int64   `json:"account_id" validate:"required,gt=0"`
	Debit       float64 `json:"debit_amount" validate:"gte=0"`
	Credit      float64 `json:"credit_amount" validate:"gte=0"`
	Description string  `json:"description" validate:"max=500"`
}

// voidEntryRequest is the JSON body for voiding an entry.
type voidEntryRequest struct {
	Reason string `json:"reason" validate:"required,max=500"`
}

func (req postEntryRequest) toPostingInput(clubID, actorID int64) (PostingInput, error) {
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return PostingInput{}, err
	}
	sourceID := uuid.New()
	if req.SourceID != "" {
		sourceID, err = uuid.Parse(req.SourceID)
		if err != nil {
			return PostingInput{}, err
		}
	}
	lines := make([]PostingLineInput, 0, len(req.Lines))
	for _, line := range req.Lines {
		lines = append(lines, PostingLineInput{
			AccountID:   line.AccountID,
			Debit:       line.Debit,
			Credit:      line.Credit,
			Description: line.Description,
		})
	}
	return PostingInput{
		ClubID:       clubID,
		Date:         date,
		Description:  req.Description,
		SourceModule: req.SourceModule,
		SourceID:     sourceID,
		ActorID:      actorID,
		Lines:        lines,
	}, nil
}
