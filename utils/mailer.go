package utils

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"

	"dietcraft/models"
)

var sesClient *ses.Client

func init() {
	cfg, err := config.LoadDefaultConfig(context.TODO(), config.WithRegion(os.Getenv("AWS_REGION")))
	if err != nil {
		log.Fatalf("AWS config load failed: %v", err)
	}
	sesClient = ses.NewFromConfig(cfg)
}

// generic SES sender
func sendEmail(to string, subject string, body string) error {
	input := &ses.SendEmailInput{
		Destination: &types.Destination{
			ToAddresses: []string{to},
		},
		Message: &types.Message{
			Subject: &types.Content{
				Data: aws.String(subject),
			},
			Body: &types.Body{
				Text: &types.Content{
					Data: aws.String(body),
				},
			},
		},
		Source: aws.String(os.Getenv("SES_EMAIL")),
	}

	_, err := sesClient.SendEmail(context.TODO(), input)
	if err != nil {
		log.Printf("SES send error: %v", err)
		return fmt.Errorf("email send failed: %v", err)
	}
	return nil
}

// SendChecklistEmail mails the weekly shopping list as plain text.
func SendChecklistEmail(to string, startDate string, items []models.ChecklistItem) error {
	subject := fmt.Sprintf("Your weekly ingredient checklist (week of %s)", startDate)

	var b strings.Builder
	b.WriteString("Here is everything you need for the week:\n\n")
	for _, item := range items {
		fmt.Fprintf(&b, "  - %s: %.2f g\n", item.Ingredient, item.TotalGrams)
	}
	b.WriteString("\nHappy cooking!\n")

	return sendEmail(to, subject, b.String())
}
