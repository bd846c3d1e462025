// Package testutil provides test helpers for the console: an in-memory fake
// of the REST backend with failure injection, and a notification recorder.
package testutil

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// Record is one stored entity as JSON-decoded fields.
type Record = map[string]any

// RecordedRequest is a request seen by the fake backend.
type RecordedRequest struct {
	Method        string
	Path          string
	Query         string
	Body          string
	Authorization string
	RequestID     string
}

// Failure is an injected error response.
type Failure struct {
	Status int
	Body   string
	// Delay holds the response back before replying.
	Delay time.Duration
}

// Backend is an in-memory fake of the /api contract.
type Backend struct {
	Server *httptest.Server
	Engine *gin.Engine

	mu          sync.Mutex
	collections map[string]map[int64]Record
	nextID      map[string]int64
	failures    map[string]Failure
	requests    []RecordedRequest
	token       string
	reports     map[string]Record
}

// NewBackend starts a fake backend that is closed when the test ends.
func NewBackend(t testing.TB) *Backend {
	t.Helper()

	b := &Backend{
		collections: map[string]map[int64]Record{},
		nextID:      map[string]int64{},
		failures:    map[string]Failure{},
		reports:     defaultReports(),
	}
	b.Engine = gin.New()
	b.Engine.Use(b.record, b.authenticate, b.inject)

	api := b.Engine.Group("/api")
	api.GET("/:collection", b.list)
	api.POST("/:collection", b.create)
	api.GET("/:collection/:id", b.get)
	api.PUT("/:collection/:id", b.update)
	api.DELETE("/:collection/:id", b.remove)
	api.PUT("/:collection/:id/:action", b.transition)
	api.PATCH("/:collection/:id/:action", b.transition)

	b.Server = httptest.NewServer(b.Engine)
	t.Cleanup(b.Server.Close)
	return b
}

// URL returns the server root; clients append /api.
func (b *Backend) URL() string {
	return b.Server.URL
}

// RequireToken makes every request without "Bearer <token>" fail with 401.
func (b *Backend) RequireToken(token string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.token = token
}

// Seed stores records in a collection. Each value is marshaled to JSON and
// must carry an "id".
func (b *Backend) Seed(t testing.TB, collection string, records ...any) {
	t.Helper()
	b.mu.Lock()
	defer b.mu.Unlock()

	store := b.store(collection)
	for _, r := range records {
		data, err := json.Marshal(r)
		require.NoError(t, err)
		var rec Record
		require.NoError(t, json.Unmarshal(data, &rec))
		id := recordID(rec)
		require.NotZero(t, id, "seeded record needs an id")
		store[id] = rec
		if id >= b.nextID[collection] {
			b.nextID[collection] = id + 1
		}
	}
}

// Fail makes method+path (e.g. "DELETE", "/api/orders/3") answer with f
// until Clear is called.
func (b *Backend) Fail(method, path string, f Failure) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failures[method+" "+path] = f
}

// Clear removes every injected failure.
func (b *Backend) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failures = map[string]Failure{}
}

// Records returns a collection ordered by id.
func (b *Backend) Records(collection string) []Record {
	b.mu.Lock()
	defer b.mu.Unlock()
	return sorted(b.store(collection))
}

// Record returns one stored record.
func (b *Backend) Record(collection string, id int64) (Record, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	rec, ok := b.store(collection)[id]
	return rec, ok
}

// Requests returns every request received so far.
func (b *Backend) Requests() []RecordedRequest {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]RecordedRequest(nil), b.requests...)
}

// CountRequests counts requests with method and path.
func (b *Backend) CountRequests(method, path string) int {
	n := 0
	for _, r := range b.Requests() {
		if r.Method == method && r.Path == path {
			n++
		}
	}
	return n
}

func (b *Backend) store(collection string) map[int64]Record {
	s, ok := b.collections[collection]
	if !ok {
		s = map[int64]Record{}
		b.collections[collection] = s
		b.nextID[collection] = 1
	}
	return s
}

func (b *Backend) record(c *gin.Context) {
	var body []byte
	if c.Request.Body != nil {
		body, _ = c.GetRawData()
		c.Set("body", body)
	}
	b.mu.Lock()
	b.requests = append(b.requests, RecordedRequest{
		Method:        c.Request.Method,
		Path:          c.Request.URL.Path,
		Query:         c.Request.URL.RawQuery,
		Body:          string(body),
		Authorization: c.GetHeader("Authorization"),
		RequestID:     c.GetHeader("X-Request-ID"),
	})
	b.mu.Unlock()
	c.Next()
}

func (b *Backend) authenticate(c *gin.Context) {
	b.mu.Lock()
	token := b.token
	b.mu.Unlock()
	if token != "" && c.GetHeader("Authorization") != "Bearer "+token {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	c.Next()
}

func (b *Backend) inject(c *gin.Context) {
	b.mu.Lock()
	f, ok := b.failures[c.Request.Method+" "+c.Request.URL.Path]
	b.mu.Unlock()
	if !ok {
		c.Next()
		return
	}
	if f.Delay > 0 {
		time.Sleep(f.Delay)
	}
	c.Data(f.Status, "text/plain; charset=utf-8", []byte(f.Body))
	c.Abort()
}

func (b *Backend) list(c *gin.Context) {
	b.mu.Lock()
	defer b.mu.Unlock()
	c.JSON(http.StatusOK, sorted(b.store(c.Param("collection"))))
}

func (b *Backend) get(c *gin.Context) {
	collection, rawID := c.Param("collection"), c.Param("id")
	switch {
	case collection == "orders" && rawID == "statistics":
		b.orderStatistics(c)
		return
	case collection == "reports":
		b.report(c, rawID)
		return
	}

	id, ok := parseID(c)
	if !ok {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	rec, found := b.store(collection)[id]
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("%s %d not found", collection, id)})
		return
	}
	c.JSON(http.StatusOK, rec)
}

func (b *Backend) create(c *gin.Context) {
	rec, ok := bindRecord(c)
	if !ok {
		return
	}
	collection := c.Param("collection")

	b.mu.Lock()
	defer b.mu.Unlock()
	store := b.store(collection)
	id := b.nextID[collection]
	b.nextID[collection] = id + 1
	rec["id"] = id
	rec["createdAt"] = time.Now().Format("2006-01-02T15:04:05")
	if number, _ := rec["orderNumber"].(string); collection == "orders" && number == "" {
		rec["orderNumber"] = fmt.Sprintf("ORD-%05d", id)
	}
	delete(rec, "password")
	store[id] = rec
	c.JSON(http.StatusCreated, rec)
}

func (b *Backend) update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	rec, ok := bindRecord(c)
	if !ok {
		return
	}
	collection := c.Param("collection")

	b.mu.Lock()
	defer b.mu.Unlock()
	store := b.store(collection)
	current, found := store[id]
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("%s %d not found", collection, id)})
		return
	}
	rec["id"] = id
	rec["createdAt"] = current["createdAt"]
	delete(rec, "password")
	store[id] = rec
	c.JSON(http.StatusOK, rec)
}

func (b *Backend) remove(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	collection := c.Param("collection")

	b.mu.Lock()
	defer b.mu.Unlock()
	store := b.store(collection)
	if _, found := store[id]; !found {
		c.String(http.StatusNotFound, "Not found")
		return
	}
	delete(store, id)
	c.Status(http.StatusNoContent)
}

func (b *Backend) transition(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	collection, action := c.Param("collection"), c.Param("action")

	var body map[string]any
	if raw, _ := c.Get("body"); len(raw.([]byte)) > 0 {
		if err := json.Unmarshal(raw.([]byte), &body); err != nil {
			c.String(http.StatusBadRequest, "Malformed body")
			return
		}
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	rec, found := b.store(collection)[id]
	if !found {
		c.String(http.StatusNotFound, "Not found")
		return
	}

	switch action {
	case "toggle-status":
		active, _ := rec["isActive"].(bool)
		rec["isActive"] = !active
	case "release":
		rec["releaseDate"] = time.Now().Format("2006-01-02")
		c.String(http.StatusOK, "Stock released")
		return
	case "status":
		status := c.Query("status")
		if status == "" {
			status, _ = body["status"].(string)
		}
		if status == "" {
			c.String(http.StatusBadRequest, "Status is required")
			return
		}
		rec["status"] = status
	case "payment-status":
		status, _ := body["paymentStatus"].(string)
		if status == "" {
			c.String(http.StatusBadRequest, "Payment status is required")
			return
		}
		rec["paymentStatus"] = status
	default:
		c.String(http.StatusNotFound, "Unknown action")
		return
	}
	c.JSON(http.StatusOK, rec)
}

func (b *Backend) orderStatistics(c *gin.Context) {
	b.mu.Lock()
	defer b.mu.Unlock()

	var total, pending, delivered int
	revenue := 0.0
	for _, rec := range b.store("orders") {
		total++
		switch rec["status"] {
		case "PENDING":
			pending++
		case "DELIVERED":
			delivered++
		}
		switch amount := rec["totalAmount"].(type) {
		case float64:
			revenue += amount
		case string:
			if v, err := strconv.ParseFloat(amount, 64); err == nil {
				revenue += v
			}
		}
	}
	c.JSON(http.StatusOK, gin.H{
		"totalOrders":     total,
		"pendingOrders":   pending,
		"deliveredOrders": delivered,
		"totalRevenue":    revenue,
	})
}

func (b *Backend) report(c *gin.Context, name string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if name == "available-reports" {
		c.JSON(http.StatusOK, gin.H{
			"reports": []string{"system-overview", "user-analytics", "employee-demographics"},
			"descriptions": gin.H{
				"system-overview":       "Complete system statistics and overview",
				"user-analytics":        "User registration and activity trends",
				"employee-demographics": "Employee distribution and demographics",
			},
		})
		return
	}
	doc, ok := b.reports[name]
	if !ok {
		c.String(http.StatusNotFound, "Unknown report")
		return
	}
	c.JSON(http.StatusOK, doc)
}

func defaultReports() map[string]Record {
	return map[string]Record{
		"system-overview": {
			"reportTitle": "System Overview Report",
			"reportType":  "SYSTEM_OVERVIEW",
			"systemStatistics": Record{
				"totalUsers":     3,
				"totalBranches":  2,
				"totalEmployees": 5,
			},
		},
		"user-analytics": {
			"reportTitle":    "User Analytics Report",
			"reportType":     "USER_ANALYTICS",
			"userStatistics": Record{"totalUsers": 3, "activeUsers": 3, "inactiveUsers": 0},
		},
		"employee-demographics": {
			"reportTitle":        "Employee Demographics Report",
			"reportType":         "EMPLOYEE_DEMOGRAPHICS",
			"employeeStatistics": Record{"totalEmployees": 5},
		},
	}
}

func bindRecord(c *gin.Context) (Record, bool) {
	raw, _ := c.Get("body")
	var rec Record
	if err := json.Unmarshal(raw.([]byte), &rec); err != nil || rec == nil {
		c.String(http.StatusBadRequest, "Malformed JSON body")
		return nil, false
	}
	return rec, true
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.String(http.StatusBadRequest, "Invalid id")
		return 0, false
	}
	return id, true
}

func recordID(rec Record) int64 {
	switch v := rec["id"].(type) {
	case float64:
		return int64(v)
	case int64:
		return v
	}
	return 0
}

func sorted(store map[int64]Record) []Record {
	ids := make([]int64, 0, len(store))
	for id := range store {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	out := make([]Record, 0, len(ids))
	for _, id := range ids {
		out = append(out, store[id])
	}
	return out
}
