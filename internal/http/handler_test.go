package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"go.uber.org/mock/gomock"
	"gorm.io/gorm"

	"service-calendar/internal/auth"
	"service-calendar/internal/calendar"
	"service-calendar/internal/http/middleware"
	"service-calendar/internal/model"
	"service-calendar/internal/rpc"
	"service-calendar/internal/rpc/rpcmock"
	"service-calendar/internal/service"
	"service-calendar/internal/view"
	"service-calendar/internal/workflow"
)

const testSecret = "test-secret"

type testEnv struct {
	router *gin.Engine
	client *rpcmock.MockClient
	parser *auth.Parser
}

func setupHandlerTest(t *testing.T) *testEnv {
	t.Helper()
	return setupHandlerTestWithLifecycle(t, nil)
}

func setupHandlerTestWithLifecycle(t *testing.T, lifecycle *service.LifecycleService) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	ctrl := gomock.NewController(t)
	client := rpcmock.NewMockClient(ctrl)
	log := zerolog.Nop()

	views, err := view.Default(rpc.ModelServiceOrder)
	if err != nil {
		t.Fatalf("views: %v", err)
	}

	adapter := workflow.NewAdapter(client, "https://maps.example.com/dir/", log)
	calendarService := calendar.NewService(client, 31*24*time.Hour)
	handler := NewHandler(adapter, calendarService, lifecycle, views, time.UTC, log)

	parser := auth.NewParser(testSecret)
	router := NewRouter(handler, middleware.Auth(parser), "test")

	return &testEnv{router: router, client: client, parser: parser}
}

func (e *testEnv) token(t *testing.T, role model.UserRole) (string, uuid.UUID) {
	t.Helper()
	userID := uuid.New()
	token, err := e.parser.Sign(auth.Claims{SessionID: uuid.New(), UserID: userID, Role: role})
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token, userID
}

func (e *testEnv) do(t *testing.T, method, path, token, body string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)

	var payload map[string]interface{}
	if strings.HasPrefix(w.Header().Get("Content-Type"), "application/json") {
		if err := json.Unmarshal(w.Body.Bytes(), &payload); err != nil {
			t.Fatalf("decode response: %v\n%s", err, w.Body.String())
		}
	}
	return w, payload
}

func (e *testEnv) expectIdentity(techID *uuid.UUID) {
	var records []rpc.Record
	if techID != nil {
		records = []rpc.Record{{"id": *techID}}
	}
	e.client.EXPECT().
		SearchRead(gomock.Any(), rpc.ModelEmployee, gomock.Any(), []string{"id"}, 1).
		Return(records, nil)
}

func data(t *testing.T, payload map[string]interface{}) map[string]interface{} {
	t.Helper()
	d, ok := payload["data"].(map[string]interface{})
	if !ok {
		t.Fatalf("missing data envelope: %v", payload)
	}
	return d
}

func TestRequiresAuthorization(t *testing.T) {
	env := setupHandlerTest(t)

	w, _ := env.do(t, http.MethodGet, "/api/v1/views/service_calendar", "", "")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestGetView(t *testing.T) {
	env := setupHandlerTest(t)
	token, _ := env.token(t, model.UserRoleDispatcher)

	w, payload := env.do(t, http.MethodGet, "/api/v1/views/technician_calendar", token, "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if d := data(t, payload); d["restricted"] != true {
		t.Fatalf("unexpected descriptor %v", d)
	}

	w, _ = env.do(t, http.MethodGet, "/api/v1/views/kanban", token, "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestStartServiceFailureFallback(t *testing.T) {
	env := setupHandlerTest(t)
	token, _ := env.token(t, model.UserRoleDispatcher)
	id := uuid.New()

	env.expectIdentity(nil)
	env.client.EXPECT().
		Call(gomock.Any(), rpc.ModelServiceOrder, rpc.MethodStartService, []uuid.UUID{id}).
		Return(nil, &rpc.Error{Model: rpc.ModelServiceOrder, Method: rpc.MethodStartService})

	w, payload := env.do(t, http.MethodPost, "/api/v1/service-orders/"+id.String()+"/start", token, "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	d := data(t, payload)
	if d["reload"] != false {
		t.Fatalf("expected no reload, got %v", d["reload"])
	}
	notification := d["notification"].(map[string]interface{})
	if notification["type"] != "danger" || notification["message"] != workflow.MsgStartFailed {
		t.Fatalf("unexpected notification %v", notification)
	}
}

func TestStartServiceForeignRecordAsTechnician(t *testing.T) {
	env := setupHandlerTest(t)
	token, _ := env.token(t, model.UserRoleTechnician)
	techID := uuid.New()
	id := uuid.New()

	env.expectIdentity(&techID)
	env.client.EXPECT().
		SearchRead(gomock.Any(), rpc.ModelServiceOrder, rpc.Domain{
			rpc.Eq("technician_id", techID),
			rpc.Eq("id", id),
		}, gomock.Any(), 1).
		Return([]rpc.Record{}, nil)

	w, _ := env.do(t, http.MethodPost, "/api/v1/service-orders/"+id.String()+"/start", token, "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d: %s", w.Code, w.Body.String())
	}
}

func TestCompleteServiceDirective(t *testing.T) {
	env := setupHandlerTest(t)
	token, _ := env.token(t, model.UserRoleAdmin)
	id := uuid.New()

	env.expectIdentity(nil)

	w, payload := env.do(t, http.MethodPost, "/api/v1/service-orders/"+id.String()+"/complete", token, "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	d := data(t, payload)
	if d["res_model"] != "service.complete.wizard" {
		t.Fatalf("unexpected directive %v", d)
	}
	ctx := d["context"].(map[string]interface{})
	if ctx["default_service_order_id"] != id.String() {
		t.Fatalf("unexpected context %v", ctx)
	}
}

func TestNavigationUnavailable(t *testing.T) {
	env := setupHandlerTest(t)
	token, _ := env.token(t, model.UserRoleDispatcher)
	id := uuid.New()
	customerID := uuid.New()

	env.expectIdentity(nil)
	env.client.EXPECT().
		SearchRead(gomock.Any(), rpc.ModelServiceOrder, rpc.Domain{rpc.Eq("id", id)}, gomock.Any(), 1).
		Return([]rpc.Record{{
			"id":         id,
			"name":       "OS00003",
			"status":     "assigned",
			"partner_id": model.Ref{ID: customerID, Label: "ACME"},
		}}, nil)
	env.client.EXPECT().
		Read(gomock.Any(), rpc.ModelPartner, []uuid.UUID{customerID}, gomock.Any()).
		Return([]rpc.Record{{"id": customerID}}, nil)

	w, payload := env.do(t, http.MethodGet, "/api/v1/service-orders/"+id.String()+"/navigation", token, "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	d := data(t, payload)
	nav := d["navigation"].(map[string]interface{})
	if nav["available"] != false {
		t.Fatalf("expected unavailable navigation, got %v", nav)
	}
	if _, ok := nav["url"]; ok {
		t.Fatalf("unavailable navigation must not carry a url: %v", nav)
	}
	notification := d["notification"].(map[string]interface{})
	if notification["type"] != "info" {
		t.Fatalf("unexpected notification %v", notification)
	}
}

func TestListEventsAsTechnician(t *testing.T) {
	env := setupHandlerTest(t)
	token, _ := env.token(t, model.UserRoleTechnician)
	techID := uuid.New()
	scheduled := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

	env.expectIdentity(&techID)
	env.client.EXPECT().
		SearchRead(gomock.Any(), rpc.ModelServiceOrder, gomock.Any(), gomock.Any(), 0).
		DoAndReturn(func(_ context.Context, _ string, domain rpc.Domain, _ []string, _ int) ([]rpc.Record, error) {
			if len(domain) != 3 || domain[0] != rpc.Eq("technician_id", techID) {
				t.Errorf("technician filter missing from %v", domain)
			}
			return []rpc.Record{{
				"id":             uuid.New(),
				"name":           "OS00004",
				"status":         "in_progress",
				"priority":       "3",
				"scheduled_date": scheduled,
			}}, nil
		})

	w, payload := env.do(t, http.MethodGet, "/api/v1/calendar/events?start=2026-03-01&end=2026-03-08", token, "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	items := data(t, payload)["items"].([]interface{})
	if len(items) != 1 {
		t.Fatalf("expected 1 event, got %d", len(items))
	}
	classes := items[0].(map[string]interface{})["classes"].([]interface{})
	if len(classes) != 2 || classes[0] != "o_calendar_service_in_progress" || classes[1] != "o_calendar_priority_3" {
		t.Fatalf("unexpected classes %v", classes)
	}
}

func TestListEventsRequiresRange(t *testing.T) {
	env := setupHandlerTest(t)
	token, _ := env.token(t, model.UserRoleDispatcher)

	w, _ := env.do(t, http.MethodGet, "/api/v1/calendar/events?end=2026-03-08", token, "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestExportEventsICS(t *testing.T) {
	env := setupHandlerTest(t)
	token, _ := env.token(t, model.UserRoleDispatcher)

	env.expectIdentity(nil)
	env.client.EXPECT().
		SearchRead(gomock.Any(), rpc.ModelServiceOrder, gomock.Any(), gomock.Any(), 0).
		Return([]rpc.Record{{
			"id":             uuid.New(),
			"name":           "OS00005",
			"status":         "assigned",
			"scheduled_date": time.Date(2026, 3, 3, 14, 0, 0, 0, time.UTC),
		}}, nil)

	w, _ := env.do(t, http.MethodGet, "/api/v1/calendar/events.ics?start=2026-03-01&end=2026-03-08", token, "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/calendar") {
		t.Fatalf("content type = %q", ct)
	}
	if !strings.Contains(w.Body.String(), "SUMMARY:OS00005") {
		t.Fatalf("missing event in feed:\n%s", w.Body.String())
	}
}

type emptyOrderStore struct{}

func (emptyOrderStore) GetByID(context.Context, uuid.UUID) (*model.ServiceOrder, error) {
	return nil, gorm.ErrRecordNotFound
}

func (emptyOrderStore) Transition(context.Context, uuid.UUID, model.ServiceStatus, map[string]interface{}, *model.ServiceOrderStatusLog) error {
	return gorm.ErrRecordNotFound
}

func (emptyOrderStore) StatusHistory(context.Context, uuid.UUID) ([]model.ServiceOrderStatusLog, error) {
	return []model.ServiceOrderStatusLog{}, nil
}

func TestStatusHistoryUnknownOrder(t *testing.T) {
	lifecycle := service.NewLifecycleService(emptyOrderStore{}, nil, time.UTC, zerolog.Nop())
	env := setupHandlerTestWithLifecycle(t, lifecycle)
	token, _ := env.token(t, model.UserRoleDispatcher)

	env.expectIdentity(nil)

	w, _ := env.do(t, http.MethodGet, "/api/v1/service-orders/"+uuid.New().String()+"/history", token, "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d: %s", w.Code, w.Body.String())
	}
}
