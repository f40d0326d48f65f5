package report

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"mime/multipart"
	"net/textproto"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/ses"
)

const attachmentName = "ami-cleanup-report.csv"

// SESMailer delivers reports through Amazon SES.
type SESMailer struct {
	svc *ses.SES
}

func NewSESMailer(sess *session.Session) *SESMailer {
	return &SESMailer{svc: ses.New(sess)}
}

// VerifiedRecipients splits recipients into SES-verified addresses and
// the rest. SES rejects mail to unverified identities in sandbox accounts,
// so they are dropped up front and named in the report body instead.
func (m *SESMailer) VerifiedRecipients(recipients []string) ([]string, []string, error) {
	identities, err := m.svc.ListIdentities(&ses.ListIdentitiesInput{
		IdentityType: aws.String(ses.IdentityTypeEmailAddress),
	})
	if err != nil {
		return nil, nil, fmt.Errorf("can't list SES identities: %s", err.Error())
	}

	attributes, err := m.svc.GetIdentityVerificationAttributes(&ses.GetIdentityVerificationAttributesInput{
		Identities: identities.Identities,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("can't get SES verification attributes: %s", err.Error())
	}

	verified := make(map[string]bool, len(attributes.VerificationAttributes))
	for identity, attribute := range attributes.VerificationAttributes {
		if aws.StringValue(attribute.VerificationStatus) == ses.VerificationStatusSuccess {
			verified[identity] = true
		}
	}

	var valid, unverified []string
	for _, recipient := range recipients {
		if verified[recipient] {
			valid = append(valid, recipient)
		} else {
			unverified = append(unverified, recipient)
		}
	}

	return valid, unverified, nil
}

func (m *SESMailer) Send(sender string, recipients []string, subject string, body string, attachment []byte) error {
	raw, err := buildRawMessage(sender, recipients, subject, body, attachment)
	if err != nil {
		return err
	}

	_, err = m.svc.SendRawEmail(&ses.SendRawEmailInput{
		Source:       aws.String(sender),
		Destinations: aws.StringSlice(recipients),
		RawMessage:   &ses.RawMessage{Data: raw},
	})
	return err
}

// buildRawMessage assembles the RFC 5322 message SendRawEmail expects:
// multipart/mixed with a plain text part and, when present, the CSV
// attachment base64-encoded.
func buildRawMessage(sender string, recipients []string, subject string, body string, attachment []byte) ([]byte, error) {
	var msg bytes.Buffer
	writer := multipart.NewWriter(&msg)

	msg.WriteString("From: " + sender + "\r\n")
	msg.WriteString("To: " + strings.Join(recipients, ", ") + "\r\n")
	msg.WriteString("Subject: " + subject + "\r\n")
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: multipart/mixed; boundary=\"" + writer.Boundary() + "\"\r\n\r\n")

	textHeader := textproto.MIMEHeader{}
	textHeader.Set("Content-Type", "text/plain; charset=utf-8")
	textPart, err := writer.CreatePart(textHeader)
	if err != nil {
		return nil, err
	}
	if _, err := textPart.Write([]byte(body)); err != nil {
		return nil, err
	}

	if len(attachment) > 0 {
		attachmentHeader := textproto.MIMEHeader{}
		attachmentHeader.Set("Content-Type", "text/csv")
		attachmentHeader.Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", attachmentName))
		attachmentHeader.Set("Content-Transfer-Encoding", "base64")
		attachmentPart, err := writer.CreatePart(attachmentHeader)
		if err != nil {
			return nil, err
		}
		encoded := make([]byte, base64.StdEncoding.EncodedLen(len(attachment)))
		base64.StdEncoding.Encode(encoded, attachment)
		if _, err := attachmentPart.Write(encoded); err != nil {
			return nil, err
		}
	}

	if err := writer.Close(); err != nil {
		return nil, err
	}

	return msg.Bytes(), nil
}
