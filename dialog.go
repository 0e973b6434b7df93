package bookkbot

import "github.com/slack-go/slack"

// newBookDialog builds the recommendation form. The callback id must be
// unique per opened dialog so submissions correlate with their form.
func newBookDialog(callbackID string) slack.Dialog {
	return slack.Dialog{
		Title:          "책을 공유해주세요.",
		CallbackID:     callbackID,
		SubmitLabel:    "submit",
		NotifyOnCancel: true,
		Elements: []slack.DialogElement{
			slack.DialogInputSelect{
				DialogInput: slack.DialogInput{
					Type:  slack.InputTypeSelect,
					Label: "카테고리",
					Name:  "category",
				},
				OptionGroups: categoryOptionGroups(),
			},
			slack.TextInputElement{
				DialogInput: slack.DialogInput{
					Type:  slack.InputTypeText,
					Label: "도서링크",
					Name:  "bookstore_url",
				},
				Subtype: slack.InputSubtypeURL,
			},
			slack.TextInputElement{
				DialogInput: slack.DialogInput{
					Type:  slack.InputTypeTextArea,
					Label: "추천이유",
					Name:  "recommend_reason",
				},
			},
		},
	}
}
