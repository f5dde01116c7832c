package notification

import (
	"bufio"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"personalhub/model"
	"personalhub/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInboxEndpoints(t *testing.T) {
	deps := testutil.NewDeps(t)
	router := testutil.NewRouter(t)
	NotificationController(router, deps)
	alice := testutil.CreateUser(t, deps.DB, "alice@example.com")
	bob := testutil.CreateUser(t, deps.DB, "bob@example.com")
	aliceToken := testutil.Token(t, deps, alice)
	bobToken := testutil.Token(t, deps, bob)

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		_, err := deps.Notifications.Notify(ctx, alice.ID, model.NotificationGeneral, fmt.Sprintf("n%d", i), "body", "")
		require.NoError(t, err)
	}

	var list struct {
		Notifications []model.Notification `json:"notifications"`
		UnreadCount   int64                `json:"unread_count"`
	}
	w := testutil.Do(t, router, http.MethodGet, "/api/notifications?limit=2", aliceToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	testutil.Decode(t, w, &list)
	assert.Len(t, list.Notifications, 2)
	assert.EqualValues(t, 3, list.UnreadCount)

	target := list.Notifications[0].ID
	assert.Equal(t, http.StatusNotFound, testutil.Do(t, router, http.MethodPost, fmt.Sprintf("/api/notifications/%d/read", target), bobToken, nil).Code)
	assert.Equal(t, http.StatusOK, testutil.Do(t, router, http.MethodPost, fmt.Sprintf("/api/notifications/%d/read", target), aliceToken, nil).Code)

	var count struct {
		UnreadCount int64 `json:"unread_count"`
	}
	testutil.Decode(t, testutil.Do(t, router, http.MethodGet, "/api/notifications/unread-count", aliceToken, nil), &count)
	assert.EqualValues(t, 2, count.UnreadCount)

	var readAll struct {
		Updated int64 `json:"updated"`
	}
	testutil.Decode(t, testutil.Do(t, router, http.MethodPost, "/api/notifications/read-all", aliceToken, nil), &readAll)
	assert.EqualValues(t, 2, readAll.Updated)

	assert.Equal(t, http.StatusNotFound, testutil.Do(t, router, http.MethodDelete, fmt.Sprintf("/api/notifications/%d", target), bobToken, nil).Code)
	assert.Equal(t, http.StatusOK, testutil.Do(t, router, http.MethodDelete, fmt.Sprintf("/api/notifications/%d", target), aliceToken, nil).Code)
	assert.Equal(t, http.StatusBadRequest, testutil.Do(t, router, http.MethodDelete, "/api/notifications/abc", aliceToken, nil).Code)
}

func readEvent(t *testing.T, r *bufio.Reader) (string, string) {
	t.Helper()
	var event, data string
	for {
		line, err := r.ReadString('\n')
		require.NoError(t, err)
		line = strings.TrimRight(line, "\n")
		switch {
		case strings.HasPrefix(line, "event:"):
			event = strings.TrimPrefix(line, "event:")
		case strings.HasPrefix(line, "data:"):
			data = strings.TrimPrefix(line, "data:")
		case line == "" && event != "":
			return event, data
		}
	}
}

func TestStreamPushesNewNotifications(t *testing.T) {
	deps := testutil.NewDeps(t)
	router := testutil.NewRouter(t)
	NotificationController(router, deps)
	user := testutil.CreateUser(t, deps.DB, "stream@example.com")
	token := testutil.Token(t, deps, user)

	srv := httptest.NewServer(router)
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"/api/notifications/stream?access_token="+token, nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/event-stream")

	body := bufio.NewReader(resp.Body)
	event, data := readEvent(t, body)
	assert.Equal(t, "unread_count", event)
	assert.JSONEq(t, `{"unread_count":0}`, data)

	require.Eventually(t, func() bool { return deps.Hub.Subscribers(user.ID) == 1 }, time.Second, 10*time.Millisecond)
	_, err = deps.Notifications.Notify(ctx, user.ID, model.NotificationGeneral, "Ping", "pong", "")
	require.NoError(t, err)

	event, data = readEvent(t, body)
	assert.Equal(t, "notification", event)
	assert.Contains(t, data, `"title":"Ping"`)
}
