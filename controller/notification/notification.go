package notification

import (
	"io"
	"net/http"
	"strconv"
	"time"

	"personalhub/controller/common"
	"personalhub/middleware"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const heartbeatInterval = 25 * time.Second

func NotificationController(router *gin.Engine, deps *common.Deps) {
	routes := router.Group("/api/notifications", middleware.AccessTokenMiddleware(deps.Tokens))
	{
		routes.GET("", func(c *gin.Context) {
			ListNotifications(c, deps)
		})
		routes.GET("/unread-count", func(c *gin.Context) {
			UnreadCount(c, deps)
		})
		routes.GET("/stream", func(c *gin.Context) {
			Stream(c, deps)
		})
		routes.POST("/read-all", func(c *gin.Context) {
			MarkAllRead(c, deps)
		})
		routes.POST("/:id/read", func(c *gin.Context) {
			MarkRead(c, deps)
		})
		routes.DELETE("/:id", func(c *gin.Context) {
			DeleteNotification(c, deps)
		})
	}
}

func ListNotifications(c *gin.Context, deps *common.Deps) {
	userID, ok := common.CurrentUser(c)
	if !ok {
		return
	}
	unreadOnly, _ := strconv.ParseBool(c.Query("unread"))
	limit, _ := strconv.Atoi(c.Query("limit"))

	items, unread, err := deps.Notifications.List(c.Request.Context(), userID, unreadOnly, limit)
	if err != nil {
		common.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"notifications": items, "unread_count": unread})
}

func UnreadCount(c *gin.Context, deps *common.Deps) {
	userID, ok := common.CurrentUser(c)
	if !ok {
		return
	}
	count, err := deps.Notifications.UnreadCount(c.Request.Context(), userID)
	if err != nil {
		common.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"unread_count": count})
}

func MarkRead(c *gin.Context, deps *common.Deps) {
	userID, ok := common.CurrentUser(c)
	if !ok {
		return
	}
	id, ok := common.ParamID(c, "id")
	if !ok {
		return
	}
	n, err := deps.Notifications.MarkRead(c.Request.Context(), userID, id)
	if err != nil {
		common.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, n)
}

func MarkAllRead(c *gin.Context, deps *common.Deps) {
	userID, ok := common.CurrentUser(c)
	if !ok {
		return
	}
	updated, err := deps.Notifications.MarkAllRead(c.Request.Context(), userID)
	if err != nil {
		common.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "All notifications marked as read", "updated": updated})
}

func DeleteNotification(c *gin.Context, deps *common.Deps) {
	userID, ok := common.CurrentUser(c)
	if !ok {
		return
	}
	id, ok := common.ParamID(c, "id")
	if !ok {
		return
	}
	if err := deps.Notifications.Delete(c.Request.Context(), userID, id); err != nil {
		common.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Notification deleted"})
}

// Stream pushes new notifications to the client as server-sent events until it disconnects.
func Stream(c *gin.Context, deps *common.Deps) {
	userID, ok := common.CurrentUser(c)
	if !ok {
		return
	}
	events, unsubscribe := deps.Hub.Subscribe(userID)
	defer unsubscribe()

	count, err := deps.Notifications.UnreadCount(c.Request.Context(), userID)
	if err != nil {
		common.Fail(c, err)
		return
	}

	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")
	c.SSEvent("unread_count", gin.H{"unread_count": count})
	c.Writer.Flush()

	log := logrus.WithField("user", userID)
	log.Debug("notification stream opened")
	defer log.Debug("notification stream closed")

	heartbeat := time.NewTicker(heartbeatInterval)
	defer heartbeat.Stop()

	c.Stream(func(w io.Writer) bool {
		select {
		case <-c.Request.Context().Done():
			return false
		case ev, ok := <-events:
			if !ok {
				return false
			}
			c.SSEvent(ev.Type, ev.Data)
			return true
		case <-heartbeat.C:
			c.SSEvent("heartbeat", gin.H{"time": time.Now().UTC().Format(time.RFC3339)})
			return true
		}
	})
}
