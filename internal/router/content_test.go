package router_test

import (
	"net/http"
	"testing"

	"Club_Portal/internal/model"
	"Club_Portal/internal/service"
	"Club_Portal/internal/testutil"
)

func errorReason(t *testing.T, env *testutil.Env, req *http.Request, status int) string {
	t.Helper()
	w := env.Do(req)
	testutil.AssertStatus(t, w, status)
	var body testutil.ErrorBody
	testutil.DecodeJSON(t, w, &body)
	return body.Error
}

func TestTimelineRoles(t *testing.T) {
	env := testutil.NewEnv(t, service.Deps{})
	admin := testutil.CreateAccount(t, env.DB, "root", model.RoleAdmin, true)
	adminTok := env.IssueToken(t, admin)

	w := env.Do(testutil.MakeRequest(http.MethodPost, "/timeline", map[string]string{"content": "seed"}, adminTok))
	testutil.AssertStatus(t, w, http.StatusCreated)
	var seed service.TimelineView
	testutil.DecodeJSON(t, w, &seed)

	tests := []struct {
		role       model.Role
		canRead    bool
		canPublish bool
	}{
		{model.RoleAdmin, true, true},
		{model.RolePresident, true, true},
		{model.RoleSecretary, true, false},
		{model.RoleMember, true, false},
	}
	for _, tt := range tests {
		t.Run(string(tt.role), func(t *testing.T) {
			acct := testutil.CreateAccount(t, env.DB, "tl_"+string(tt.role), tt.role, true)
			tok := env.IssueToken(t, acct)

			w := env.Do(testutil.MakeRequest(http.MethodGet, "/timeline", nil, tok))
			testutil.AssertStatus(t, w, http.StatusOK)
			w = env.Do(testutil.MakeRequest(http.MethodGet, "/timeline/"+seed.ID, nil, tok))
			testutil.AssertStatus(t, w, http.StatusOK)

			want := http.StatusForbidden
			if tt.canPublish {
				want = http.StatusCreated
			}
			w = env.Do(testutil.MakeRequest(http.MethodPost, "/timeline", map[string]string{
				"title": "Update", "content": "posted by " + string(tt.role),
			}, tok))
			testutil.AssertStatus(t, w, want)
			if !tt.canPublish {
				w = env.Do(testutil.MakeRequest(http.MethodPut, "/timeline/"+seed.ID, map[string]string{"content": "edited"}, tok))
				testutil.AssertStatus(t, w, http.StatusForbidden)
				w = env.Do(testutil.MakeRequest(http.MethodDelete, "/timeline/"+seed.ID, nil, tok))
				testutil.AssertStatus(t, w, http.StatusForbidden)
				return
			}
			var post service.TimelineView
			testutil.DecodeJSON(t, w, &post)
			if post.Author == nil || post.Author.Username != acct.Username {
				t.Errorf("expected author %s, got %+v", acct.Username, post.Author)
			}
			w = env.Do(testutil.MakeRequest(http.MethodDelete, "/timeline/"+post.ID, nil, tok))
			testutil.AssertStatus(t, w, http.StatusOK)
			w = env.Do(testutil.MakeRequest(http.MethodGet, "/timeline/"+post.ID, nil, tok))
			testutil.AssertStatus(t, w, http.StatusNotFound)
		})
	}

	w = env.Do(testutil.MakeRequest(http.MethodGet, "/timeline", nil, ""))
	testutil.AssertStatus(t, w, http.StatusUnauthorized)

	w = env.Do(testutil.MakeRequest(http.MethodGet, "/timeline", nil, adminTok))
	testutil.AssertStatus(t, w, http.StatusOK)
	var list service.PageResult[service.TimelineView]
	testutil.DecodeJSON(t, w, &list)
	if list.Total != 1 || list.Items[0].ID != seed.ID {
		t.Errorf("expected only the seed post to remain, got %+v", list)
	}
}

func TestTimelinePartialUpdate(t *testing.T) {
	env := testutil.NewEnv(t, service.Deps{})
	pres := testutil.CreateAccount(t, env.DB, "pres", model.RolePresident, true)
	tok := env.IssueToken(t, pres)

	w := env.Do(testutil.MakeRequest(http.MethodPost, "/timeline", map[string]string{
		"title": "Picnic", "content": "Sunday at noon", "image_url": "https://img.example/p.png",
	}, tok))
	testutil.AssertStatus(t, w, http.StatusCreated)
	var post service.TimelineView
	testutil.DecodeJSON(t, w, &post)

	w = env.Do(testutil.MakeRequest(http.MethodPut, "/timeline/"+post.ID, map[string]string{"content": "Moved to Saturday"}, tok))
	testutil.AssertStatus(t, w, http.StatusOK)
	var got service.TimelineView
	testutil.DecodeJSON(t, w, &got)
	if got.Content != "Moved to Saturday" || got.Title == nil || *got.Title != "Picnic" ||
		got.ImageURL == nil || *got.ImageURL != "https://img.example/p.png" {
		t.Errorf("partial update touched other fields: %+v", got)
	}

	if r := errorReason(t, env, testutil.MakeRequest(http.MethodPut, "/timeline/"+post.ID, map[string]any{}, tok), http.StatusNotFound); r != "NoChanges" {
		t.Errorf("expected NoChanges, got %s", r)
	}
	errorReason(t, env, testutil.MakeRequest(http.MethodPut, "/timeline/"+post.ID, map[string]string{"content": "  "}, tok), http.StatusBadRequest)

	w = env.Do(testutil.MakeRequest(http.MethodGet, "/timeline/"+post.ID, nil, tok))
	testutil.AssertStatus(t, w, http.StatusOK)
	testutil.DecodeJSON(t, w, &got)
	if got.Content != "Moved to Saturday" {
		t.Errorf("rejected updates must not write, got content %q", got.Content)
	}
}

func TestEventPartialUpdate(t *testing.T) {
	env := testutil.NewEnv(t, service.Deps{})
	sec := testutil.CreateAccount(t, env.DB, "sec", model.RoleSecretary, true)
	host := testutil.CreateAccount(t, env.DB, "hosty", model.RoleMember, true)
	tok := env.IssueToken(t, sec)

	w := env.Do(testutil.MakeRequest(http.MethodPost, "/events", map[string]string{
		"name": "Workshop", "date": "2026-12-01", "time": "10:00", "address": "Hall B", "host": host.Email,
	}, tok))
	testutil.AssertStatus(t, w, http.StatusCreated)
	var ev service.EventView
	testutil.DecodeJSON(t, w, &ev)
	if ev.HostID == nil || *ev.HostID != host.ID || ev.HostName != nil || ev.Host == nil || *ev.Host != "hosty" {
		t.Fatalf("expected account host, got %+v", ev)
	}

	put := func(body any) *http.Request {
		return testutil.MakeRequest(http.MethodPut, "/events/"+ev.ID, body, tok)
	}

	w = env.Do(put(map[string]string{"address": "Hall C"}))
	testutil.AssertStatus(t, w, http.StatusOK)
	var got service.EventView
	testutil.DecodeJSON(t, w, &got)
	if got.Address != "Hall C" || got.Name != "Workshop" || got.Date != "2026-12-01" || got.Time != "10:00" ||
		got.HostID == nil || *got.HostID != host.ID {
		t.Errorf("partial update touched other fields: %+v", got)
	}

	// free-text host clears the account reference, and back again
	w = env.Do(put(map[string]string{"host": "Visiting Chef"}))
	testutil.AssertStatus(t, w, http.StatusOK)
	testutil.DecodeJSON(t, w, &got)
	if got.HostID != nil || got.HostName == nil || *got.HostName != "Visiting Chef" || got.Address != "Hall C" {
		t.Errorf("expected free-text host only, got %+v", got)
	}
	w = env.Do(put(map[string]string{"host": "hosty"}))
	testutil.AssertStatus(t, w, http.StatusOK)
	testutil.DecodeJSON(t, w, &got)
	if got.HostID == nil || *got.HostID != host.ID || got.HostName != nil {
		t.Errorf("expected account host only, got %+v", got)
	}

	if r := errorReason(t, env, put(map[string]any{}), http.StatusNotFound); r != "NoChanges" {
		t.Errorf("expected NoChanges, got %s", r)
	}
	errorReason(t, env, put(map[string]string{"name": "   "}), http.StatusBadRequest)

	w = env.Do(testutil.MakeRequest(http.MethodGet, "/events/"+ev.ID, nil, ""))
	testutil.AssertStatus(t, w, http.StatusOK)
	testutil.DecodeJSON(t, w, &got)
	if got.Name != "Workshop" {
		t.Errorf("blank name must not be stored, got %q", got.Name)
	}
}

func TestBlogPartialUpdate(t *testing.T) {
	env := testutil.NewEnv(t, service.Deps{})
	admin := testutil.CreateAccount(t, env.DB, "root", model.RoleAdmin, true)
	tok := env.IssueToken(t, admin)

	w := env.Do(testutil.MakeRequest(http.MethodPost, "/blogs", map[string]string{
		"title": "Welcome", "content": "Hello club",
	}, tok))
	testutil.AssertStatus(t, w, http.StatusCreated)
	var blog service.BlogView
	testutil.DecodeJSON(t, w, &blog)
	if !blog.IsAvailable {
		t.Fatal("admin blog should be published on creation")
	}

	// visible to anonymous readers without an approval step
	w = env.Do(testutil.MakeRequest(http.MethodGet, "/blogs/"+blog.ID, nil, ""))
	testutil.AssertStatus(t, w, http.StatusOK)

	w = env.Do(testutil.MakeRequest(http.MethodPut, "/blogs/"+blog.ID, map[string]string{"content": "Hello again"}, tok))
	testutil.AssertStatus(t, w, http.StatusOK)
	var got service.BlogView
	testutil.DecodeJSON(t, w, &got)
	if got.Content != "Hello again" || got.Title != "Welcome" || !got.IsAvailable {
		t.Errorf("partial update touched other fields: %+v", got)
	}

	put := func(body any) *http.Request {
		return testutil.MakeRequest(http.MethodPut, "/blogs/"+blog.ID, body, tok)
	}
	if r := errorReason(t, env, put(map[string]any{}), http.StatusNotFound); r != "NoChanges" {
		t.Errorf("expected NoChanges, got %s", r)
	}
	errorReason(t, env, put(map[string]string{"title": "   "}), http.StatusBadRequest)

	w = env.Do(testutil.MakeRequest(http.MethodGet, "/blogs/"+blog.ID, nil, ""))
	testutil.AssertStatus(t, w, http.StatusOK)
	testutil.DecodeJSON(t, w, &got)
	if got.Title != "Welcome" {
		t.Errorf("blank title must not be stored, got %q", got.Title)
	}
}
