package portfolio

import (
	"context"
	"fmt"
	"net/http"

	"personalhub/controller/common"
	"personalhub/dto"
	"personalhub/model"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const contactAction = "contact"

func ContactController(api *gin.RouterGroup, deps *common.Deps) {
	api.POST("/contact", func(c *gin.Context) {
		Contact(c, deps)
	})
}

func Contact(c *gin.Context, deps *common.Deps) {
	var req dto.ContactRequest
	if err := c.ShouldBind(&req); err != nil {
		common.BadRequest(c, err)
		return
	}
	if err := SubmitContact(c.Request.Context(), deps, req, c.ClientIP(), c.Request.UserAgent()); err != nil {
		common.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Thank you for your message! I'll get back to you soon."})
}

// SubmitContact verifies the captcha, records the message and mails it to the site
// owner. The record is kept even when sending fails; admins get a general notification.
func SubmitContact(ctx context.Context, deps *common.Deps, req dto.ContactRequest, ip, userAgent string) error {
	if _, err := deps.Captcha.Verify(ctx, req.CaptchaToken, contactAction, ip, userAgent); err != nil {
		return err
	}

	db := deps.DB.WithContext(ctx)
	msg := model.ContactMessage{Name: req.Name, Email: req.Email, Subject: req.Subject, Message: req.Message}
	if err := db.Create(&msg).Error; err != nil {
		return err
	}

	log := logrus.WithFields(logrus.Fields{"contact": msg.ID, "email": req.Email})
	sendErr := deps.Mailer.SendContact(req.Name, req.Email, req.Subject, req.Message)
	if sendErr == nil {
		if err := db.Model(&msg).Update("sent", true).Error; err != nil {
			log.WithError(err).Warn("contact message not marked as sent")
		}
	} else {
		log.WithError(sendErr).Error("contact email failed")
	}

	var admins []model.User
	if err := db.Where("role = ?", model.RoleAdmin).Find(&admins).Error; err != nil {
		log.WithError(err).Warn("could not load admins for contact notification")
	}
	for _, admin := range admins {
		_, err := deps.Notifications.Notify(ctx, admin.ID, model.NotificationGeneral,
			"New contact message: "+req.Subject,
			fmt.Sprintf("%s <%s> wrote: %s", req.Name, req.Email, truncate(req.Message, 200)),
			"")
		if err != nil {
			log.WithError(err).Warn("contact notification failed")
		}
	}
	return sendErr
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
