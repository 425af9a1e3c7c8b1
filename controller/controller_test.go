package controller

import (
	"bytes"
	"encoding/json"
	"fooddonation-backend/dal"
	"fooddonation-backend/models"
	"fooddonation-backend/repository"
	"fooddonation-backend/services"
	"fooddonation-backend/utils/export"
	"fooddonation-backend/utils/logger"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
	"github.com/xuri/excelize/v2"
)

// envelope mirrors models.APIResponse with a raw data payload
type envelope struct {
	Status  string           `json:"status"`
	Code    int              `json:"code"`
	Message string           `json:"message"`
	Data    json.RawMessage  `json:"data"`
	Error   *models.APIError `json:"error"`
}

// ControllerTestSuite drives the full router against the in-memory store
type ControllerTestSuite struct {
	suite.Suite
	router *gin.Engine
	config *models.Config
}

func (suite *ControllerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.config = &models.Config{
		AppName:             "Food Donation Backend",
		AppVersion:          "1.0.0",
		BasePath:            "/api",
		DynamoDBTablePrefix: "test",
	}
	log := logger.NewLoggerWithOutput("error", "json", io.Discard)
	repo := repository.NewRepository(dal.NewMemoryClient(log), suite.config, log)
	svc := services.NewService(repo, services.Dependencies{ReportWriter: export.NewExcelWriter()}, log, suite.config)

	suite.router = gin.New()
	NewController(svc, log).RegisterRoutes(suite.router, suite.config)
}

func (suite *ControllerTestSuite) do(method, path string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	var reader io.Reader
	if body != nil {
		raw, ok := body.(string)
		if !ok {
			b, err := json.Marshal(body)
			suite.Require().NoError(err)
			raw = string(b)
		}
		reader = bytes.NewBufferString(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	var env envelope
	if w.Header().Get("Content-Type") == "application/json; charset=utf-8" {
		suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &env))
	}
	return w, env
}

func (suite *ControllerTestSuite) createNGO(email, reg string) string {
	w, env := suite.do(http.MethodPost, "/api/ngos", map[string]interface{}{
		"name":               "Harvest Hope",
		"email":              email,
		"phone":              "5551234567",
		"registrationNumber": reg,
		"status":             "active",
		"serviceAreas":       []string{"north"},
		"contactPerson":      map[string]string{"name": "Asha Rao"},
	})
	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	var ngo models.NGO
	suite.Require().NoError(json.Unmarshal(env.Data, &ngo))
	return ngo.ID
}

func (suite *ControllerTestSuite) createDonation(status, ngoID string, date time.Time, quantities ...float64) string {
	items := []map[string]interface{}{}
	for _, q := range quantities {
		items = append(items, map[string]interface{}{"itemName": "Bread", "quantity": q, "unit": "kg"})
	}
	w, env := suite.do(http.MethodPost, "/api/donations", map[string]interface{}{
		"donorName":    "Corner Bakery",
		"foodItems":    items,
		"status":       status,
		"ngoId":        ngoID,
		"donationDate": date.Format(time.RFC3339),
	})
	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	var donation models.Donation
	suite.Require().NoError(json.Unmarshal(env.Data, &donation))
	return donation.ID
}

func (suite *ControllerTestSuite) TestHealth() {
	for _, path := range []string{"/health", "/api/health"} {
		w, _ := suite.do(http.MethodGet, path, nil)
		suite.Equal(http.StatusOK, w.Code)
		suite.Contains(w.Body.String(), "Food Donation Backend")
	}
}

func (suite *ControllerTestSuite) TestDonationLifecycle() {
	ngoID := suite.createNGO("team@harvest.org", "REG-1")
	id := suite.createDonation("pending", ngoID, time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC), 10)

	w, env := suite.do(http.MethodGet, "/api/donations/"+id, nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	var got map[string]interface{}
	suite.Require().NoError(json.Unmarshal(env.Data, &got))
	suite.Equal(map[string]interface{}{"_id": ngoID, "name": "Harvest Hope", "email": "team@harvest.org"}, got["ngoId"])

	w, env = suite.do(http.MethodPut, "/api/donations/"+id, `{"notes":"left at gate"}`)
	suite.Require().Equal(http.StatusOK, w.Code)
	var updated models.Donation
	suite.Require().NoError(json.Unmarshal(env.Data, &updated))
	suite.Equal("left at gate", updated.Notes)
	suite.Equal("Corner Bakery", updated.DonorName)

	w, env = suite.do(http.MethodPatch, "/api/donations/"+id+"/status", map[string]string{"status": "shipped"})
	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Equal(models.ErrorTypeValidation, env.Error.Type)
	suite.Equal("status", env.Error.Field)

	w, _ = suite.do(http.MethodPatch, "/api/donations/"+id+"/status", map[string]string{"status": "accepted"})
	suite.Equal(http.StatusOK, w.Code)

	w, env = suite.do(http.MethodDelete, "/api/donations/"+id, nil)
	suite.Equal(http.StatusOK, w.Code)
	suite.Equal("Donation deleted successfully", env.Message)

	w, env = suite.do(http.MethodGet, "/api/donations/"+id, nil)
	suite.Equal(http.StatusNotFound, w.Code)
	suite.Equal("Donation not found", env.Message)
	suite.Equal(models.ErrorTypeNotFound, env.Error.Type)
}

func (suite *ControllerTestSuite) TestDonationValidation() {
	w, env := suite.do(http.MethodPost, "/api/donations", map[string]interface{}{
		"foodItems": []map[string]interface{}{{"itemName": "Rice", "quantity": 1, "unit": "kg"}},
	})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Equal("donorName", env.Error.Field)

	w, _ = suite.do(http.MethodPost, "/api/donations", `{"donorName": 7}`)
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *ControllerTestSuite) TestDonationFilters() {
	suite.createDonation("pending", "", time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC), 1)
	suite.createDonation("accepted", "", time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC), 1)
	suite.createDonation("pending", "", time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC), 1)

	count := func(query string) int {
		w, env := suite.do(http.MethodGet, "/api/donations"+query, nil)
		suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())
		var list []models.PopulatedDonation
		suite.Require().NoError(json.Unmarshal(env.Data, &list))
		return len(list)
	}

	suite.Equal(3, count(""))
	suite.Equal(2, count("?status=pending"))
	suite.Equal(1, count("?startDate=2024-02-01&endDate=2024-02-28"))
	// a single bound is ignored
	suite.Equal(3, count("?startDate=2024-02-01"))
	suite.Equal(0, count("?status=unknown"))

	w, env := suite.do(http.MethodGet, "/api/donations?startDate=yesterday&endDate=2024-02-28", nil)
	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Equal("startDate", env.Error.Field)
}

func (suite *ControllerTestSuite) TestDuplicateNGOEmail() {
	suite.createNGO("team@harvest.org", "REG-1")

	w, env := suite.do(http.MethodPost, "/api/ngos", map[string]interface{}{
		"name":               "Other",
		"email":              "team@harvest.org",
		"phone":              "5559876543",
		"registrationNumber": "REG-2",
	})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Equal("email", env.Error.Field)
	suite.Equal(string(models.ValidationDuplicate), env.Error.Details)
}

func (suite *ControllerTestSuite) TestNGOSearchAndOverview() {
	suite.createNGO("team@harvest.org", "REG-1")

	w, env := suite.do(http.MethodGet, "/api/ngos?search=asha", nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	var list []models.NGO
	suite.Require().NoError(json.Unmarshal(env.Data, &list))
	suite.Len(list, 1)

	w, env = suite.do(http.MethodGet, "/api/ngos/stats/overview", nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	var overview models.NGOOverview
	suite.Require().NoError(json.Unmarshal(env.Data, &overview))
	suite.Equal(1, overview.Active)
	suite.Equal([]models.CountStat{{ID: "north", Count: 1}}, overview.ServiceAreaStats)
}

func (suite *ControllerTestSuite) TestFoodSearchAndInventoryAlias() {
	expiry := time.Now().Add(48 * time.Hour).UTC().Format(time.RFC3339)
	for _, name := range []string{"Basmati Rice", "Apples"} {
		w, _ := suite.do(http.MethodPost, "/api/food", map[string]interface{}{
			"name": name, "category": "grains", "quantity": 5, "unit": "kg", "expiryDate": expiry,
		})
		suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	}

	w, env := suite.do(http.MethodGet, "/api/food?search=RICE", nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	var items []models.FoodItem
	suite.Require().NoError(json.Unmarshal(env.Data, &items))
	suite.Require().Len(items, 1)
	suite.Equal("Basmati Rice", items[0].Name)

	_, overview := suite.do(http.MethodGet, "/api/food/stats/overview", nil)
	_, inventory := suite.do(http.MethodGet, "/api/food/stats/inventory", nil)
	suite.JSONEq(string(overview.Data), string(inventory.Data))

	w, env = suite.do(http.MethodGet, "/api/reports/alerts/expiry", nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	suite.Require().NoError(json.Unmarshal(env.Data, &items))
	suite.Len(items, 2)
}

func (suite *ControllerTestSuite) TestCommunicationsBulkStatus() {
	ids := []string{}
	for i := 0; i < 2; i++ {
		w, env := suite.do(http.MethodPost, "/api/communications", map[string]string{
			"sender": "ops", "recipient": "Harvest Hope", "subject": "Pickup", "message": "Tomorrow 9am",
		})
		suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
		var comm models.Communication
		suite.Require().NoError(json.Unmarshal(env.Data, &comm))
		suite.Equal(models.CommunicationSent, comm.Status)
		suite.NotNil(comm.Metadata)
		ids = append(ids, comm.ID)
	}

	w, env := suite.do(http.MethodPost, "/api/communications/bulk/status", map[string]interface{}{
		"ids": append(ids, "missing"), "status": "read",
	})
	suite.Require().Equal(http.StatusOK, w.Code)
	var result models.BulkStatusResult
	suite.Require().NoError(json.Unmarshal(env.Data, &result))
	suite.Equal(2, result.ModifiedCount)
	suite.Equal("Updated 2 communications", env.Message)

	// same request again changes nothing
	_, env = suite.do(http.MethodPost, "/api/communications/bulk/status", map[string]interface{}{"ids": ids, "status": "read"})
	suite.Require().NoError(json.Unmarshal(env.Data, &result))
	suite.Equal(0, result.ModifiedCount)

	w, _ = suite.do(http.MethodPost, "/api/communications/bulk/status", map[string]interface{}{"ids": []string{}, "status": "read"})
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *ControllerTestSuite) TestAttachmentWithoutStorage() {
	_, env := suite.do(http.MethodPost, "/api/communications", map[string]string{
		"sender": "ops", "recipient": "Harvest Hope", "subject": "Pickup", "message": "m",
	})
	var comm models.Communication
	suite.Require().NoError(json.Unmarshal(env.Data, &comm))

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", "manifest.txt")
	suite.Require().NoError(err)
	_, err = part.Write([]byte("10kg bread"))
	suite.Require().NoError(err)
	suite.Require().NoError(mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/communications/"+comm.ID+"/attachments", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusServiceUnavailable, w.Code)
}

func (suite *ControllerTestSuite) TestDashboardScenario() {
	suite.createDonation("pending", "", time.Now(), 10)
	suite.createDonation("distributed", "", time.Now(), 5, 5)

	w, env := suite.do(http.MethodGet, "/api/reports/dashboard/overview", nil)

	suite.Require().Equal(http.StatusOK, w.Code)
	var kpis models.DashboardKPIs
	suite.Require().NoError(json.Unmarshal(env.Data, &kpis))
	suite.Equal(20.0, kpis.TotalMealsDonated)
	suite.Equal(50.0, kpis.SuccessRate)
}

func (suite *ControllerTestSuite) TestCustomReport() {
	suite.createDonation("pending", "", time.Now(), 1)
	today := time.Now().UTC()
	body := map[string]interface{}{
		"startDate": today.Add(-24 * time.Hour).Format("2006-01-02"),
		"endDate":   today.Add(24 * time.Hour).Format("2006-01-02"),
		"metrics":   []string{"food"},
	}

	w, env := suite.do(http.MethodPost, "/api/reports/custom", body)
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	suite.JSONEq(`{"foodItems":[]}`, string(env.Data))

	body["metrics"] = []string{"donations"}
	_, env = suite.do(http.MethodPost, "/api/reports/custom", body)
	var report map[string][]map[string]interface{}
	suite.Require().NoError(json.Unmarshal(env.Data, &report))
	suite.Len(report["donations"], 1)

	w, env = suite.do(http.MethodPost, "/api/reports/custom", map[string]interface{}{"endDate": "2024-01-01"})
	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Equal("startDate", env.Error.Field)

	w, env = suite.do(http.MethodPost, "/api/reports/custom", map[string]interface{}{"startDate": "2024-02-01", "endDate": "2024-01-01"})
	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Equal("endDate", env.Error.Field)

	w, env = suite.do(http.MethodPost, "/api/reports/custom", map[string]interface{}{"startDate": "01/02/2024", "endDate": "2024-01-01"})
	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Equal("startDate", env.Error.Field)
}

func (suite *ControllerTestSuite) TestCustomReportExport() {
	suite.createNGO("team@harvest.org", "REG-1")
	today := time.Now().UTC()

	w, _ := suite.do(http.MethodPost, "/api/reports/custom/export", map[string]interface{}{
		"startDate": today.Add(-time.Hour).Format(time.RFC3339),
		"endDate":   today.Add(time.Hour).Format(time.RFC3339),
		"metrics":   []string{"ngos"},
	})

	suite.Require().Equal(http.StatusOK, w.Code)
	suite.Equal(export.ContentType, w.Header().Get("Content-Type"))
	suite.Contains(w.Header().Get("Content-Disposition"), ".xlsx")

	f, err := excelize.OpenReader(w.Body)
	suite.Require().NoError(err)
	defer f.Close()
	rows, err := f.GetRows(export.NGOsSheet)
	suite.Require().NoError(err)
	suite.Len(rows, 2)
}

func TestControllerTestSuite(t *testing.T) {
	suite.Run(t, new(ControllerTestSuite))
}
