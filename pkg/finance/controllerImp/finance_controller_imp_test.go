package controllerImp

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"greenlands/entities"
	financeRepoImp "greenlands/pkg/finance/repositoryImp"
	"greenlands/pkg/middleware"
	"greenlands/pkg/policy"
	"greenlands/pkg/validate"
)

func newTestCtrl(t *testing.T) (*FinanceCtrl, *echo.Echo, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&entities.Transaction{}))

	e := echo.New()
	e.Validator = validate.New()
	return New(financeRepoImp.New(db)), e, db
}

func ctxAs(e *echo.Echo, method, body string, id policy.Identity) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	middleware.SetIdentity(c, id)
	return c, rec
}

func TestReportEmptyLedger(t *testing.T) {
	ctrl, e, _ := newTestCtrl(t)

	c, rec := ctxAs(e, http.MethodGet, "", policy.Identity{ID: 1, Role: policy.RoleFarmer})
	require.NoError(t, ctrl.Report(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		TotalIncome   float64                `json:"totalIncome"`
		TotalExpenses float64                `json:"totalExpenses"`
		Balance       float64                `json:"balance"`
		Transactions  []entities.Transaction `json:"transactions"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Zero(t, resp.TotalIncome)
	assert.Zero(t, resp.TotalExpenses)
	assert.Zero(t, resp.Balance)
	assert.NotNil(t, resp.Transactions, "empty array, not null")
	assert.Contains(t, rec.Body.String(), `"transactions":[]`)
}

func TestBalanceIdentity(t *testing.T) {
	ctrl, e, _ := newTestCtrl(t)
	alice := policy.Identity{ID: 1, Role: policy.RoleFarmer}
	bob := policy.Identity{ID: 2, Role: policy.RoleFarmer}

	create := func(id policy.Identity, body string) {
		c, rec := ctxAs(e, http.MethodPost, body, id)
		require.NoError(t, ctrl.CreateTransaction(c))
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	}
	create(alice, `{"type":"income","amount":500,"description":"harvest sale"}`)
	create(alice, `{"type":"income","amount":120.5,"date":"2026-03-01"}`)
	create(alice, `{"type":"expense","amount":200,"description":"seed"}`)
	create(bob, `{"type":"income","amount":9999}`)

	c, rec := ctxAs(e, http.MethodGet, "", alice)
	require.NoError(t, ctrl.Report(c))

	var resp struct {
		TotalIncome   float64                `json:"totalIncome"`
		TotalExpenses float64                `json:"totalExpenses"`
		Balance       float64                `json:"balance"`
		Transactions  []entities.Transaction `json:"transactions"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 620.5, resp.TotalIncome)
	assert.Equal(t, float64(200), resp.TotalExpenses)
	assert.Equal(t, 420.5, resp.Balance)
	assert.Len(t, resp.Transactions, 3, "caller-scoped: bob's ledger excluded")
	for _, tx := range resp.Transactions {
		assert.Equal(t, alice.ID, tx.FarmerID)
	}
}

func TestCreateTransactionValidation(t *testing.T) {
	ctrl, e, db := newTestCtrl(t)
	ident := policy.Identity{ID: 1, Role: policy.RoleFarmer}

	for _, body := range []string{
		`{"type":"transfer","amount":10}`,
		`{"type":"income","amount":0}`,
		`{"type":"income","amount":-5}`,
		`{"amount":10}`,
	} {
		c, rec := ctxAs(e, http.MethodPost, body, ident)
		require.NoError(t, ctrl.CreateTransaction(c))
		assert.Equal(t, http.StatusBadRequest, rec.Code, body)
	}

	var n int64
	require.NoError(t, db.Model(&entities.Transaction{}).Count(&n).Error)
	assert.Zero(t, n)
}

func TestCreateTransactionOwnerFromToken(t *testing.T) {
	ctrl, e, _ := newTestCtrl(t)

	// a farmerId in the body is ignored; ownership comes from the identity
	c, rec := ctxAs(e, http.MethodPost,
		`{"type":"income","amount":10,"farmerId":99}`,
		policy.Identity{ID: 7, Role: policy.RoleFarmer})
	require.NoError(t, ctrl.CreateTransaction(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	var tx entities.Transaction
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &tx))
	assert.Equal(t, uint(7), tx.FarmerID)
}
