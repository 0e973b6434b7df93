package bookkbot

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/slack-go/slack"
)

// Announcement posted to the channel after a successful submission.
const successMessage = "\n📖 %s님이 %s도서를 추천했어요 📖\n\n%s\n%s\n"

const (
	msgInvalidURL       = "유효하지 않은 URL입니다."
	msgUnsupportedStore = "첨부 가능한 서점 링크는 리디북스/예스24 입니다."
)

type dialogFieldError struct {
	Name  string `json:"name"`
	Error string `json:"error"`
}

type dialogErrorResponse struct {
	Errors []dialogFieldError `json:"errors"`
}

func newDialogErrorResponse(field string, message string) dialogErrorResponse {
	return dialogErrorResponse{Errors: []dialogFieldError{{Name: field, Error: message}}}
}

func (b *Bot) newOpenFormHandler() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		triggerID := ctx.PostForm("trigger_id")
		if triggerID == "" {
			_ = ctx.AbortWithError(http.StatusBadRequest, ErrMissingTriggerID)
			return
		}

		dialog := newBookDialog(uuid.New().String())
		if err := b.api.OpenDialog(triggerID, dialog); err != nil {
			// Slack reported ok=false; hand its error string back as-is.
			ctx.String(http.StatusOK, "%s", err.Error())
			return
		}

		ctx.Status(http.StatusOK)
	}
}

func (b *Bot) newSubmitBookHandler() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		payload := ctx.PostForm("payload")
		if payload == "" {
			_ = ctx.AbortWithError(http.StatusBadRequest, ErrEmptyPayload)
			return
		}

		var interaction slack.InteractionCallback
		if err := json.Unmarshal([]byte(payload), &interaction); err != nil {
			_ = ctx.AbortWithError(http.StatusBadRequest, ErrBadPayload)
			return
		}

		// Cancellations and other interaction types are out-of-band events.
		if interaction.Type != slack.InteractionTypeDialogSubmission {
			ctx.Status(http.StatusBadRequest)
			return
		}

		submission, err := newBookSubmission(interaction.Submission)
		if err != nil {
			_ = ctx.AbortWithError(http.StatusBadRequest, err)
			return
		}

		link, err := normalizeLink(submission.BookstoreURL)
		if err != nil {
			ctx.JSON(http.StatusOK, newDialogErrorResponse("bookstore_url", msgInvalidURL))
			return
		}
		submission.BookstoreURL = link

		if !supportsMetadataLookup(link) {
			ctx.JSON(http.StatusOK, newDialogErrorResponse("bookstore_url", msgUnsupportedStore))
			return
		}

		profile, err := b.api.GetUserProfile(interaction.User.ID, false)
		if err != nil {
			ctx.String(http.StatusOK, "%s", err.Error())
			return
		}

		book := Book{
			Category:        submission.Category,
			BookstoreURL:    submission.BookstoreURL,
			RecommendReason: submission.RecommendReason,
			Recommender:     profile.RealName,
		}

		text := fmt.Sprintf(successMessage, book.Recommender, book.Category, book.RecommendReason, book.BookstoreURL)
		if _, _, err := b.api.PostMessage(interaction.Channel.ID, slack.MsgOptionText(text, false)); err != nil {
			ctx.String(http.StatusOK, "%s", err.Error())
			return
		}

		// Archival runs out-of-band; its outcome never reaches the user.
		b.archiver.Enqueue(book)

		ctx.Status(http.StatusOK)
	}
}
