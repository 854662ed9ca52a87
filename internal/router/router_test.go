package router_test

import (
	"bufio"
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"pet-lost-found/internal/domain/session"
	"pet-lost-found/internal/router"
)

func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(router.NewRouter(router.Options{AuthVerifier: nil}))
	t.Cleanup(ts.Close)
	return ts
}

func foundCat() map[string]any {
	return map[string]any{
		"status":       "Found",
		"species":      "Cat",
		"color":        "Black",
		"date":         "2024-03-01",
		"location":     "Main St",
		"contactName":  "A",
		"contactPhone": "555-0100",
		"contactEmail": "a@b.com",
	}
}

func TestHTTP_SubmitReport_NoPhoto(t *testing.T) {
	ts := newServer(t)

	st, body := doReq(t, ts.URL, "POST", "/api/reports", "user-1", foundCat())
	if st != http.StatusCreated {
		t.Fatalf("expected 201, got %d body=%s", st, string(body))
	}

	var resp struct {
		ID     string  `json:"id"`
		UserID string  `json:"userId"`
		Photo  *string `json:"photo"`
		Status string  `json:"status"`
	}
	_ = json.Unmarshal(body, &resp)
	if resp.ID == "" || resp.UserID != "user-1" || resp.Status != "Found" {
		t.Fatalf("unexpected response %s", string(body))
	}
	if resp.Photo != nil {
		t.Fatalf("expected null photo, got %q", *resp.Photo)
	}
}

func TestHTTP_SubmitReport_WithPhoto_ServesObject(t *testing.T) {
	ts := newServer(t)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	rep, _ := json.Marshal(foundCat())
	_ = mw.WriteField("report", string(rep))
	fw, _ := mw.CreateFormFile("photo", "cat.jpg")
	_, _ = fw.Write([]byte("\xff\xd8fake-jpeg"))
	_ = mw.Close()

	req, _ := http.NewRequest(http.MethodPost, ts.URL+"/api/reports", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("X-Debug-User-ID", "user-1")
	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	body, _ := io.ReadAll(res.Body)
	res.Body.Close()
	if res.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d body=%s", res.StatusCode, string(body))
	}

	var resp struct {
		Photo *string `json:"photo"`
	}
	_ = json.Unmarshal(body, &resp)
	if resp.Photo == nil || !strings.HasPrefix(*resp.Photo, router.ObjectsPrefix+"/pets/user-1/") {
		t.Fatalf("expected durable photo url, got %s", string(body))
	}

	st, obj := doReq(t, ts.URL, "GET", *resp.Photo, "", nil)
	if st != http.StatusOK || string(obj) != "\xff\xd8fake-jpeg" {
		t.Fatalf("expected stored object, got %d %q", st, obj)
	}
}

func TestHTTP_SubmitReport_Unauthenticated(t *testing.T) {
	ts := newServer(t)

	st, _ := doReq(t, ts.URL, "POST", "/api/reports", "", foundCat())
	if st != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", st)
	}
}

func TestHTTP_SubmitReport_MissingFields(t *testing.T) {
	ts := newServer(t)

	payload := foundCat()
	delete(payload, "contactEmail")
	payload["color"] = "  "

	st, body := doReq(t, ts.URL, "POST", "/api/reports", "user-1", payload)
	if st != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d body=%s", st, string(body))
	}
	var resp struct {
		Fields []string `json:"fields"`
	}
	_ = json.Unmarshal(body, &resp)
	if strings.Join(resp.Fields, ",") != "color,contactEmail" {
		t.Fatalf("unexpected fields %v", resp.Fields)
	}
}

func TestHTTP_SubmitReport_CoordinatesOutOfPlane(t *testing.T) {
	ts := newServer(t)

	payload := foundCat()
	payload["coordinates"] = map[string]any{"lat": 500, "lng": -20}

	st, body := doReq(t, ts.URL, "POST", "/api/reports", "user-1", payload)
	if st != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d body=%s", st, string(body))
	}
}

func TestHTTP_Assistant_LocalFallback(t *testing.T) {
	ts := newServer(t)

	st, body := doReq(t, ts.URL, "POST", "/api/assistant/description", "user-1", map[string]any{
		"status":   "Lost",
		"breed":    "Labrador",
		"color":    "Brown",
		"gender":   "Male",
		"location": "5th Ave",
	})
	if st != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", st, string(body))
	}
	var resp struct {
		Description string `json:"description"`
		Remote      bool   `json:"remote"`
	}
	_ = json.Unmarshal(body, &resp)
	if resp.Remote || resp.Description != "This is a Male Brown Labrador. Last seen near 5th Ave." {
		t.Fatalf("unexpected response %s", string(body))
	}
}

func TestHTML_SignInSubmitDashboard(t *testing.T) {
	ts := newServer(t)
	c := browser(t)

	// sin sesión, crear reporte avisa
	page := postForm(t, c, ts.URL+"/reports/new?status=Lost", nil)
	if !strings.Contains(page, "Please sign in to create a report.") {
		t.Fatalf("expected sign-in notice, got %s", page)
	}

	page = postForm(t, c, ts.URL+"/auth/signin", url.Values{"token": {"u-1|Ana Perez"}})
	if !strings.Contains(page, "Hi, Ana") {
		t.Fatalf("expected greeting, got %s", page)
	}

	page = postForm(t, c, ts.URL+"/reports/new?status=Lost", nil)
	if !strings.Contains(page, "Report a lost pet") {
		t.Fatalf("expected form, got %s", page)
	}

	form := url.Values{
		"status":       {"Lost"},
		"name":         {"Rex"},
		"species":      {"Dog"},
		"breed":        {"Labrador"},
		"color":        {"Brown"},
		"gender":       {"Male"},
		"date":         {"2024-03-01"},
		"location":     {"5th Ave"},
		"contactName":  {"Ana"},
		"contactPhone": {"555-0100"},
		"contactEmail": {"ana@example.test"},
	}

	// generar con el fallback local
	form.Set("action", "generate")
	page = postForm(t, c, ts.URL+"/reports/form", form)
	if !strings.Contains(page, "This is a Male Brown Labrador. Last seen near 5th Ave.") {
		t.Fatalf("expected generated description, got %s", page)
	}

	form.Set("action", "submit")
	page = postForm(t, c, ts.URL+"/reports/form", form)
	for _, want := range []string{"badge badge-lost", "Rex", "Mar 1, 2024", "api.qrserver.com", "Small Tabby Cat"} {
		if !strings.Contains(page, want) {
			t.Fatalf("dashboard missing %q: %s", want, page)
		}
	}

	page = postForm(t, c, ts.URL+"/dashboard/flyer", url.Values{"open": {"true"}})
	if !strings.Contains(page, "Open printable flyer") {
		t.Fatalf("expected flyer link, got %s", page)
	}
	res, err := c.Get(ts.URL + "/dashboard/flyer")
	if err != nil {
		t.Fatalf("get flyer: %v", err)
	}
	flyer, _ := io.ReadAll(res.Body)
	res.Body.Close()
	if !strings.Contains(string(flyer), "HAVE YOU SEEN ME?") {
		t.Fatalf("unexpected flyer %s", flyer)
	}

	page = postForm(t, c, ts.URL+"/auth/signout", nil)
	if !strings.Contains(page, "Lost or found a pet?") {
		t.Fatalf("expected home after sign out, got %s", page)
	}
}

func TestHTML_SubmitInvalidStaysOnForm(t *testing.T) {
	ts := newServer(t)
	c := browser(t)

	postForm(t, c, ts.URL+"/auth/signin", url.Values{"token": {"u-2"}})
	postForm(t, c, ts.URL+"/reports/new?status=Found", nil)

	page := postForm(t, c, ts.URL+"/reports/form", url.Values{"action": {"submit"}, "status": {"Found"}, "species": {"Cat"}})
	if !strings.Contains(page, "Please fill in all required fields.") || !strings.Contains(page, "Report a found pet") {
		t.Fatalf("expected form with notice, got %s", page)
	}
}

func TestHTML_StatusStreamOutlivesWriteTimeout(t *testing.T) {
	ts := httptest.NewUnstartedServer(router.NewRouter(router.Options{
		Session: session.HandlerConfig{TickInterval: 20 * time.Millisecond},
	}))
	ts.Config.WriteTimeout = 50 * time.Millisecond
	ts.Start()
	t.Cleanup(ts.Close)
	c := browser(t)

	postForm(t, c, ts.URL+"/auth/signin", url.Values{"token": {"u-3"}})
	postForm(t, c, ts.URL+"/reports/new?status=Found", nil)
	postForm(t, c, ts.URL+"/reports/form", url.Values{
		"action":       {"submit"},
		"status":       {"Found"},
		"species":      {"Cat"},
		"color":        {"Black"},
		"date":         {"2024-03-01"},
		"location":     {"Main St"},
		"contactName":  {"A"},
		"contactPhone": {"555-0100"},
		"contactEmail": {"a@b.com"},
	})

	res, err := c.Get(ts.URL + "/dashboard/status")
	if err != nil {
		t.Fatalf("get status stream: %v", err)
	}
	defer res.Body.Close()
	if ct := res.Header.Get("Content-Type"); ct != "text/event-stream" {
		t.Fatalf("unexpected content type %q", ct)
	}

	// 8 eventos a 20ms superan holgadamente el WriteTimeout de 50ms
	sc := bufio.NewScanner(res.Body)
	events := 0
	for events < 8 && sc.Scan() {
		if strings.HasPrefix(sc.Text(), "data: ") {
			events++
		}
	}
	if events < 8 {
		t.Fatalf("stream cut after %d events: %v", events, sc.Err())
	}
}

func TestHTTP_Health(t *testing.T) {
	ts := newServer(t)
	st, body := doReq(t, ts.URL, "GET", "/health", "", nil)
	if st != http.StatusOK || string(body) != "ok" {
		t.Fatalf("unexpected health %d %s", st, body)
	}
}

func browser(t *testing.T) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("cookie jar: %v", err)
	}
	return &http.Client{Jar: jar}
}

// postForm sigue el redirect (303 => GET) y devuelve el HTML final.
func postForm(t *testing.T, c *http.Client, u string, form url.Values) string {
	t.Helper()
	if form == nil {
		form = url.Values{}
	}
	res, err := c.PostForm(u, form)
	if err != nil {
		t.Fatalf("post %s: %v", u, err)
	}
	defer res.Body.Close()
	b, _ := io.ReadAll(res.Body)
	if res.StatusCode != http.StatusOK {
		t.Fatalf("post %s: status %d body=%s", u, res.StatusCode, string(b))
	}
	return string(b)
}

func doReq(t *testing.T, baseURL, method, path, debugUserID string, body any) (int, []byte) {
	t.Helper()

	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("json marshal: %v", err)
		}
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, baseURL+path, rdr)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if debugUserID != "" {
		req.Header.Set("X-Debug-User-ID", debugUserID)
	}

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer res.Body.Close()

	respBody, _ := io.ReadAll(res.Body)
	return res.StatusCode, respBody
}
