package app

import (
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"skill-gap/internal/config"

	"github.com/gofiber/fiber/v3"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type envelope struct {
	Status  int             `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type sessionData struct {
	Levels     map[string]int `json:"levels"`
	Version    int            `json:"version"`
	Completion struct {
		Percent *float64 `json:"percent"`
		Display string   `json:"display"`
	} `json:"completion"`
}

func newTestApp(t *testing.T) *App {
	t.Helper()
	a, _ := newTestServer(t)
	return a
}

func newTestServer(t *testing.T) (*App, *Container) {
	t.Helper()
	cfg := config.Config{
		App:     config.AppConfig{AppName: "skill-gap-test", Environment: "test", HTTPPort: "0"},
		Session: config.SessionConfig{Secret: "test-secret", TTL: time.Hour, CookieName: "sg"},
		Tracker: config.TrackerConfig{Jobs: 20, Seed: 42},
	}
	c, err := NewContainer(context.Background(), cfg, zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return New(c), c
}

func do(t *testing.T, a *App, req *http.Request, cookies ...*http.Cookie) *http.Response {
	t.Helper()
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	resp, err := a.Fiber.Test(req)
	require.NoError(t, err)
	return resp
}

func decode(t *testing.T, resp *http.Response) envelope {
	t.Helper()
	defer resp.Body.Close()
	var env envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return env
}

func sessionCookie(t *testing.T, resp *http.Response) *http.Cookie {
	t.Helper()
	for _, ck := range resp.Cookies() {
		if ck.Name == "sg" {
			return ck
		}
	}
	t.Fatal("session cookie not set")
	return nil
}

func TestHealth(t *testing.T) {
	a := newTestApp(t)
	resp := do(t, a, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	env := decode(t, resp)
	var data map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, "disabled", data["database"])
	assert.Equal(t, "memory", data["sessions"])
}

func TestDashboardPage_NewSessionStartsAtZero(t *testing.T) {
	a := newTestApp(t)
	resp := do(t, a, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	sessionCookie(t, resp)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	html := string(body)
	assert.Contains(t, html, "Overall Skill Completion: 0.00%")
	assert.Contains(t, html, `name="Machine Learning"`)
	assert.Contains(t, html, `/charts/radar`)
	assert.Contains(t, html, `/charts/grouped`)
	assert.Contains(t, html, `/charts/donut`)
}

func TestSessionAPI_SetLevelPersists(t *testing.T) {
	a := newTestApp(t)
	first := do(t, a, httptest.NewRequest(http.MethodGet, "/api/v1/session", nil))
	ck := sessionCookie(t, first)
	_ = decode(t, first)

	req := httptest.NewRequest(http.MethodPut, "/api/v1/session/levels/Python", strings.NewReader(`{"level":8}`))
	req.Header.Set("Content-Type", "application/json")
	resp := do(t, a, req, ck)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	_ = decode(t, resp)

	req = httptest.NewRequest(http.MethodPut, "/api/v1/session/levels/"+url.PathEscape("Machine Learning"), strings.NewReader(`{"level":0}`))
	req.Header.Set("Content-Type", "application/json")
	resp = do(t, a, req, ck)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	_ = decode(t, resp)

	env := decode(t, do(t, a, httptest.NewRequest(http.MethodGet, "/api/v1/session", nil), ck))
	var data sessionData
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, 8, data.Levels["Python"])
	assert.Equal(t, 0, data.Levels["Machine Learning"])
	assert.Equal(t, 2, data.Version)
	assert.Equal(t, "20.51%", data.Completion.Display)
}

func TestSessionAPI_Validation(t *testing.T) {
	a := newTestApp(t)
	cases := []struct {
		name string
		path string
		body string
		want int
	}{
		{"above max", "/api/v1/session/levels/Python", `{"level":11}`, http.StatusUnprocessableEntity},
		{"below min", "/api/v1/session/levels/Python", `{"level":-1}`, http.StatusUnprocessableEntity},
		{"missing level", "/api/v1/session/levels/Python", `{}`, http.StatusUnprocessableEntity},
		{"unknown skill", "/api/v1/session/levels/Cobol", `{"level":3}`, http.StatusUnprocessableEntity},
		{"malformed", "/api/v1/session/levels/Python", `{"level":`, http.StatusBadRequest},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPut, tc.path, strings.NewReader(tc.body))
			req.Header.Set("Content-Type", "application/json")
			resp := do(t, a, req)
			assert.Equal(t, tc.want, resp.StatusCode)
			env := decode(t, resp)
			assert.Equal(t, tc.want, env.Status)
		})
	}
}

func TestSessionAPI_Reset(t *testing.T) {
	a := newTestApp(t)
	req := httptest.NewRequest(http.MethodPut, "/api/v1/session/levels", strings.NewReader(`{"levels":{"Python":8,"SQL":7}}`))
	req.Header.Set("Content-Type", "application/json")
	resp := do(t, a, req)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	ck := sessionCookie(t, resp)
	_ = decode(t, resp)

	env := decode(t, do(t, a, httptest.NewRequest(http.MethodDelete, "/api/v1/session", nil), ck))
	var data sessionData
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, 0, data.Levels["Python"])
	assert.Equal(t, "0.00%", data.Completion.Display)
}

func TestLevelsForm_RedirectsAndApplies(t *testing.T) {
	a := newTestApp(t)
	form := url.Values{"Python": {"8"}, "SQL": {"7"}}
	req := httptest.NewRequest(http.MethodPost, "/levels", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	resp := do(t, a, req)
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/", resp.Header.Get("Location"))
	ck := sessionCookie(t, resp)

	page := do(t, a, httptest.NewRequest(http.MethodGet, "/", nil), ck)
	body, err := io.ReadAll(page.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "Overall Skill Completion: 38.46%")

	bad := url.Values{"Python": {"eleven"}}
	req = httptest.NewRequest(http.MethodPost, "/levels", strings.NewReader(bad.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	assert.Equal(t, http.StatusUnprocessableEntity, do(t, a, req, ck).StatusCode)
}

func TestCharts(t *testing.T) {
	a := newTestApp(t)
	for _, kind := range []string{"radar", "gap", "bubble", "grouped", "donut"} {
		resp := do(t, a, httptest.NewRequest(http.MethodGet, "/charts/"+kind, nil))
		assert.Equal(t, http.StatusOK, resp.StatusCode, kind)
		assert.Contains(t, resp.Header.Get("Content-Type"), "text/html", kind)
	}
	resp := do(t, a, httptest.NewRequest(http.MethodGet, "/charts/pie3d", nil))
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestDatasetsAPI(t *testing.T) {
	a := newTestApp(t)
	env := decode(t, do(t, a, httptest.NewRequest(http.MethodGet, "/api/v1/datasets", nil)))
	var list []struct {
		ID       string `json:"id"`
		JobCount int    `json:"job_count"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &list))
	require.Len(t, list, 1)
	assert.Equal(t, 20, list[0].JobCount)

	env = decode(t, do(t, a, httptest.NewRequest(http.MethodGet, "/api/v1/datasets/"+list[0].ID+"/jobs?limit=5", nil)))
	var page struct {
		Jobs  []string `json:"jobs"`
		Total int      `json:"total"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &page))
	require.Len(t, page.Jobs, 5)
	assert.Equal(t, 20, page.Total)

	job := url.PathEscape(page.Jobs[0])
	resp := do(t, a, httptest.NewRequest(http.MethodGet, "/api/v1/datasets/"+list[0].ID+"/jobs/"+job+"/gap", nil))
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	env = decode(t, resp)
	assert.Contains(t, string(env.Data), "missing_skills")

	resp = do(t, a, httptest.NewRequest(http.MethodGet, "/api/v1/datasets/not-a-uuid/jobs", nil))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

type gapReport struct {
	Job     string `json:"job"`
	Records []struct {
		Skill       string `json:"skill"`
		UserLevel   int    `json:"user_level"`
		GapPositive int    `json:"gap_positive"`
	} `json:"records"`
	Completion struct {
		Percent *float64 `json:"percent"`
	} `json:"completion"`
}

func TestDatasetsAPI_GapWithFullProfile(t *testing.T) {
	a := newTestApp(t)

	env := decode(t, do(t, a, httptest.NewRequest(http.MethodGet, "/api/v1/datasets", nil)))
	var list []struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &list))
	require.Len(t, list, 1)
	base := "/api/v1/datasets/" + list[0].ID + "/jobs/"

	env = decode(t, do(t, a, httptest.NewRequest(http.MethodGet, base[:len(base)-1]+"?limit=20", nil)))
	var page struct {
		Jobs []string `json:"jobs"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &page))

	// An empty profile lists every skill of the job; pick a job with a multi-word skill.
	var job string
	var skills []string
	for _, j := range page.Jobs {
		env := decode(t, do(t, a, httptest.NewRequest(http.MethodGet, base+url.PathEscape(j)+"/gap", nil)))
		var missing struct {
			Skills []string `json:"missing_skills"`
		}
		require.NoError(t, json.Unmarshal(env.Data, &missing))
		for _, s := range missing.Skills {
			if strings.Contains(s, " ") {
				job, skills = j, missing.Skills
			}
		}
		if job != "" {
			break
		}
	}
	require.NotEmpty(t, job, "no generated job requires a multi-word skill")

	q := url.Values{}
	for _, s := range skills {
		q.Set(s, "10")
	}
	require.Contains(t, q.Encode(), "+")

	resp := do(t, a, httptest.NewRequest(http.MethodGet, base+url.PathEscape(job)+"/gap?"+q.Encode(), nil))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	env = decode(t, resp)

	var rep gapReport
	require.NoError(t, json.Unmarshal(env.Data, &rep))
	assert.Equal(t, job, rep.Job)
	require.Len(t, rep.Records, len(skills))
	for i, r := range rep.Records {
		assert.Equal(t, skills[i], r.Skill)
		assert.Equal(t, 10, r.UserLevel)
		assert.Equal(t, 0, r.GapPositive)
	}
	require.NotNil(t, rep.Completion.Percent)
	assert.GreaterOrEqual(t, *rep.Completion.Percent, 100.0)

	q.Set(skills[0], "11")
	resp = do(t, a, httptest.NewRequest(http.MethodGet, base+url.PathEscape(job)+"/gap?"+q.Encode(), nil))
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}

type wsFrame struct {
	Type  string          `json:"type"`
	Data  json.RawMessage `json:"data"`
	Error string          `json:"error"`
}

func readFrame(t *testing.T, conn *websocket.Conn) wsFrame {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(3*time.Second)))
	var f wsFrame
	require.NoError(t, conn.ReadJSON(&f))
	return f
}

func TestWebSocket_LiveReport(t *testing.T) {
	a, c := newTestServer(t)

	ctx, cancel := context.WithCancel(context.Background())
	hubDone := make(chan struct{})
	go func() {
		_ = c.Hub.Run(ctx)
		close(hubDone)
	}()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	go func() {
		_ = a.Fiber.Listener(ln, fiber.ListenConfig{DisableStartupMessage: true})
	}()
	t.Cleanup(func() {
		_ = a.Fiber.Shutdown()
		cancel()
		<-hubDone
	})

	conn, resp, err := websocket.DefaultDialer.Dial("ws://"+ln.Addr().String()+"/ws", nil)
	require.NoError(t, err)
	defer conn.Close()
	assert.Equal(t, http.StatusSwitchingProtocols, resp.StatusCode)

	first := readFrame(t, conn)
	assert.Equal(t, "report", first.Type)
	var data sessionData
	require.NoError(t, json.Unmarshal(first.Data, &data))
	assert.Equal(t, "0.00%", data.Completion.Display)

	require.NoError(t, conn.WriteJSON(map[string]any{"skill": "Python", "level": 8}))
	update := readFrame(t, conn)
	assert.Equal(t, "report", update.Type)
	require.NoError(t, json.Unmarshal(update.Data, &data))
	assert.Equal(t, 8, data.Levels["Python"])
	assert.Equal(t, 1, data.Version)

	require.NoError(t, conn.WriteJSON(map[string]any{"skill": "Python", "level": 42}))
	bad := readFrame(t, conn)
	assert.Equal(t, "error", bad.Type)
	assert.NotEmpty(t, bad.Error)
}
