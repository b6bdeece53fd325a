package controllerImp

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"greenlands/entities"
	"greenlands/pkg/apperr"
	"greenlands/pkg/finance/repository"
	"greenlands/pkg/middleware"
	"greenlands/pkg/validate"
)

type FinanceCtrl struct{ repo repository.TransactionRepository }

func New(repo repository.TransactionRepository) *FinanceCtrl { return &FinanceCtrl{repo} }

type reportResp struct {
	TotalIncome   float64                `json:"totalIncome"`
	TotalExpenses float64                `json:"totalExpenses"`
	Balance       float64                `json:"balance"`
	Transactions  []entities.Transaction `json:"transactions"`
}

// Report is caller-scoped: the ledger of the authenticated farmer. An empty
// ledger reports zeros, not an error.
func (h *FinanceCtrl) Report(c echo.Context) error {
	ident, _ := middleware.IdentityFrom(c)
	txs, err := h.repo.ByFarmer(ident.ID)
	if err != nil {
		return apperr.Server(c, err)
	}
	resp := reportResp{Transactions: txs}
	for _, t := range txs {
		switch t.Type {
		case "income":
			resp.TotalIncome += t.Amount
		case "expense":
			resp.TotalExpenses += t.Amount
		}
	}
	resp.Balance = resp.TotalIncome - resp.TotalExpenses
	if resp.Transactions == nil {
		resp.Transactions = []entities.Transaction{}
	}
	return c.JSON(http.StatusOK, resp)
}

type txReq struct {
	Type        string  `json:"type" validate:"required,oneof=income expense"`
	Amount      float64 `json:"amount" validate:"required,gt=0"`
	Date        string  `json:"date"`
	Description string  `json:"description"`
}

func (h *FinanceCtrl) CreateTransaction(c echo.Context) error {
	ident, _ := middleware.IdentityFrom(c)
	var req txReq
	if err := c.Bind(&req); err != nil {
		return apperr.Validation(c, "bad json")
	}
	if err := c.Validate(&req); err != nil {
		return apperr.Fields(c, validate.Fields(err))
	}
	date := time.Now()
	if req.Date != "" {
		if d, err := time.Parse("2006-01-02", req.Date); err == nil {
			date = d
		}
	}
	t := &entities.Transaction{
		FarmerID:    ident.ID,
		Type:        req.Type,
		Amount:      req.Amount,
		Date:        date,
		Description: req.Description,
	}
	if err := h.repo.Create(t); err != nil {
		return apperr.Server(c, err)
	}
	return c.JSON(http.StatusCreated, t)
}
