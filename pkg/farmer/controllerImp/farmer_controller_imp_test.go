package controllerImp

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"greenlands/entities"
	landRepoImp "greenlands/pkg/land/repositoryImp"
	"greenlands/pkg/middleware"
	"greenlands/pkg/policy"
	userRepoImp "greenlands/pkg/user/repositoryImp"
	"greenlands/pkg/validate"
)

func newTestCtrl(t *testing.T) (*FarmerCtrl, *echo.Echo, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&entities.User{}, &entities.Land{}))

	e := echo.New()
	e.Validator = validate.New()
	return New(userRepoImp.New(db), landRepoImp.New(db)), e, db
}

func seedFarmer(t *testing.T, db *gorm.DB, name string, crops ...string) *entities.User {
	t.Helper()
	u := &entities.User{Name: name, Email: strings.ToLower(name) + "@example.com",
		Password: "x", Role: policy.RoleFarmer, IsActive: true}
	u.FarmDetails.Crops = crops
	require.NoError(t, db.Create(u).Error)
	return u
}

func ctxAs(e *echo.Echo, method, body string, id policy.Identity) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	middleware.SetIdentity(c, id)
	return c, rec
}

func TestAddCropSetSemantics(t *testing.T) {
	ctrl, e, db := newTestCtrl(t)
	farmer := seedFarmer(t, db, "alice", "Wheat")
	ident := policy.Identity{ID: farmer.ID, Role: policy.RoleFarmer}
	idStr := strconv.Itoa(int(farmer.ID))

	add := func(crop string) *entities.User {
		c, rec := ctxAs(e, http.MethodPost, `{"crop":"`+crop+`"}`, ident)
		c.SetParamNames("id")
		c.SetParamValues(idStr)
		require.NoError(t, ctrl.AddCrop(c))
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		var u entities.User
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &u))
		return &u
	}

	u := add("Corn")
	assert.Equal(t, []string{"Wheat", "Corn"}, u.FarmDetails.Crops)

	// idempotent: adding an existing crop never duplicates
	u = add("Corn")
	assert.Equal(t, []string{"Wheat", "Corn"}, u.FarmDetails.Crops)

	// case-sensitive membership, matching the stored value exactly
	u = add("corn")
	assert.Equal(t, []string{"Wheat", "Corn", "corn"}, u.FarmDetails.Crops)
}

func TestRemoveCrop(t *testing.T) {
	ctrl, e, db := newTestCtrl(t)
	farmer := seedFarmer(t, db, "alice", "Wheat", "Corn")
	ident := policy.Identity{ID: farmer.ID, Role: policy.RoleFarmer}
	idStr := strconv.Itoa(int(farmer.ID))

	remove := func(crop string) *entities.User {
		c, rec := ctxAs(e, http.MethodDelete, "", ident)
		c.SetParamNames("id", "crop")
		c.SetParamValues(idStr, crop)
		require.NoError(t, ctrl.RemoveCrop(c))
		require.Equal(t, http.StatusOK, rec.Code)
		var u entities.User
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &u))
		return &u
	}

	u := remove("Wheat")
	assert.Equal(t, []string{"Corn"}, u.FarmDetails.Crops)

	// removing an absent crop is a no-op, not an error
	u = remove("Barley")
	assert.Equal(t, []string{"Corn"}, u.FarmDetails.Crops)
}

func TestCropMutationOwnership(t *testing.T) {
	ctrl, e, db := newTestCtrl(t)
	alice := seedFarmer(t, db, "alice", "Wheat")
	bob := seedFarmer(t, db, "bob")

	c, rec := ctxAs(e, http.MethodPost, `{"crop":"Corn"}`,
		policy.Identity{ID: bob.ID, Role: policy.RoleFarmer})
	c.SetParamNames("id")
	c.SetParamValues(strconv.Itoa(int(alice.ID)))
	require.NoError(t, ctrl.AddCrop(c))
	assert.Equal(t, http.StatusForbidden, rec.Code)

	var stored entities.User
	require.NoError(t, db.First(&stored, alice.ID).Error)
	assert.Equal(t, []string{"Wheat"}, stored.FarmDetails.Crops)
}

func TestAddEquipmentIdempotent(t *testing.T) {
	ctrl, e, db := newTestCtrl(t)
	farmer := seedFarmer(t, db, "alice")
	ident := policy.Identity{ID: farmer.ID, Role: policy.RoleFarmer}
	idStr := strconv.Itoa(int(farmer.ID))

	for i := 0; i < 2; i++ {
		c, rec := ctxAs(e, http.MethodPost, `{"equipment":"Tractor"}`, ident)
		c.SetParamNames("id")
		c.SetParamValues(idStr)
		require.NoError(t, ctrl.AddEquipment(c))
		require.Equal(t, http.StatusOK, rec.Code)
	}

	var stored entities.User
	require.NoError(t, db.First(&stored, farmer.ID).Error)
	assert.Equal(t, []string{"Tractor"}, stored.FarmDetails.Equipment)
}

func TestListOnlyActiveFarmers(t *testing.T) {
	ctrl, e, db := newTestCtrl(t)
	seedFarmer(t, db, "alice")
	inactive := seedFarmer(t, db, "bob")
	require.NoError(t, db.Model(inactive).Update("is_active", false).Error)
	gov := &entities.User{Name: "gov", Email: "gov@example.com", Password: "x",
		Role: policy.RoleGovernment, IsActive: true}
	require.NoError(t, db.Create(gov).Error)

	c, rec := ctxAs(e, http.MethodGet, "", policy.Identity{ID: gov.ID, Role: policy.RoleGovernment})
	require.NoError(t, ctrl.List(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var farmers []entities.User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &farmers))
	require.Len(t, farmers, 1)
	assert.Equal(t, "alice", farmers[0].Name)
}

func TestReportRequiresOwnership(t *testing.T) {
	ctrl, e, db := newTestCtrl(t)
	alice := seedFarmer(t, db, "alice")
	bob := seedFarmer(t, db, "bob")

	c, rec := ctxAs(e, http.MethodGet, "", policy.Identity{ID: bob.ID, Role: policy.RoleFarmer})
	c.SetParamNames("id")
	c.SetParamValues(strconv.Itoa(int(alice.ID)))
	require.NoError(t, ctrl.Report(c))
	assert.Equal(t, http.StatusForbidden, rec.Code)

	c, rec = ctxAs(e, http.MethodGet, "", policy.Identity{ID: alice.ID, Role: policy.RoleFarmer})
	c.SetParamNames("id")
	c.SetParamValues(strconv.Itoa(int(alice.ID)))
	require.NoError(t, ctrl.Report(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get(echo.HeaderContentType), "csv")
}
