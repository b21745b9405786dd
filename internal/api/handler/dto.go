package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/stock-tracking-backend/internal/domain/transaction"
)

// TransactionResponse decorates a transaction with display renditions of its
// exact money values. The stored minor units stay authoritative; the display
// strings are recomposed, never parsed back.
type TransactionResponse struct {
	*transaction.Transaction
	PriceDisplay string `json:"price_display,omitempty"`
	FeesDisplay  string `json:"fees_display,omitempty"`
}

func mapTransactionToResponse(tx *transaction.Transaction) TransactionResponse {
	resp := TransactionResponse{Transaction: tx}
	if tx.Price.Code() != "" {
		resp.PriceDisplay = tx.Price.String()
	}
	if tx.Fees.Code() != "" {
		resp.FeesDisplay = tx.Fees.String()
	}
	return resp
}

func mapTransactionsToResponse(txs []*transaction.Transaction) []TransactionResponse {
	responses := make([]TransactionResponse, 0, len(txs))
	for _, tx := range txs {
		responses = append(responses, mapTransactionToResponse(tx))
	}
	return responses
}

// queryParams flattens the request's query string into the document shape the
// services validate and filter on. Repeated parameters keep their first value.
func queryParams(c *gin.Context) map[string]any {
	params := make(map[string]any)
	for key, values := range c.Request.URL.Query() {
		if len(values) > 0 {
			params[key] = values[0]
		}
	}
	return params
}
