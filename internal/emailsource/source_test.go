package emailsource_test

import (
	"context"
	"strings"
	"testing"

	"github.com/dafterhq/fulus/internal/emailsource"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasteSource(t *testing.T) {
	source := &emailsource.PasteSource{
		Subject: "Transaction Alert",
		From:    "alerts@bankmuscat.com",
		Body:    "Amount: OMR 125.750 debited",
	}

	records, err := source.Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 1)

	rec := records[0]
	assert.True(t, strings.HasPrefix(rec.ID, "manual_"), "id %q", rec.ID)
	assert.Equal(t, "Transaction Alert", rec.Subject)
	assert.Equal(t, "alerts@bankmuscat.com", rec.From)
	assert.Equal(t, "Amount: OMR 125.750 debited", rec.Body)
	assert.NotEmpty(t, rec.Date)
}

func TestPasteSource_Defaults(t *testing.T) {
	source := &emailsource.PasteSource{Body: "Amount: OMR 1.000 debited"}

	records, err := source.Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Manual Entry", records[0].Subject)
	assert.Equal(t, "manual@example.com", records[0].From)
}

func TestPasteSource_EmptyBody(t *testing.T) {
	source := &emailsource.PasteSource{Body: "   "}

	_, err := source.Fetch(context.Background())
	require.Error(t, err)
}

func TestUploadSource_RawText(t *testing.T) {
	source := &emailsource.UploadSource{
		Filename: "alert.txt",
		From:     "alerts@nbo.om",
		Content:  []byte("Your account was debited with OMR 12.000"),
	}

	records, err := source.Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 1)

	rec := records[0]
	assert.True(t, strings.HasPrefix(rec.ID, "upload_"), "id %q", rec.ID)
	assert.Equal(t, "alert.txt", rec.Subject)
	assert.Equal(t, "alerts@nbo.om", rec.From)
	assert.Equal(t, "Your account was debited with OMR 12.000", rec.Body)
}

func TestUploadSource_Empty(t *testing.T) {
	source := &emailsource.UploadSource{Filename: "empty.eml"}

	_, err := source.Fetch(context.Background())
	require.Error(t, err)
}

const rawSinglePart = "From: Bank Muscat <alerts@bankmuscat.com>\r\n" +
	"To: customer@example.com\r\n" +
	"Subject: Transaction Alert\r\n" +
	"Date: Mon, 12 Jan 2026 14:35:00 +0400\r\n" +
	"Message-ID: <abc123@bankmuscat.com>\r\n" +
	"Content-Type: text/plain; charset=utf-8\r\n" +
	"\r\n" +
	"Amount: OMR 125.750 debited\r\n"

func TestParseMessage_SinglePart(t *testing.T) {
	rec, err := emailsource.ParseMessage(strings.NewReader(rawSinglePart))
	require.NoError(t, err)

	assert.Equal(t, "Transaction Alert", rec.Subject)
	assert.Contains(t, rec.From, "alerts@bankmuscat.com")
	assert.Equal(t, "abc123@bankmuscat.com", rec.ID)
	assert.NotEmpty(t, rec.Date)
	assert.Equal(t, "Amount: OMR 125.750 debited", rec.Body)
}

const rawMultipart = "From: alerts@bankdhofar.com\r\n" +
	"Subject: Credit Advice\r\n" +
	"Content-Type: multipart/alternative; boundary=\"b1\"\r\n" +
	"\r\n" +
	"--b1\r\n" +
	"Content-Type: text/html; charset=utf-8\r\n" +
	"\r\n" +
	"<p>Amount: OMR 300.000 credited</p>\r\n" +
	"--b1\r\n" +
	"Content-Type: text/plain; charset=utf-8\r\n" +
	"\r\n" +
	"Amount: OMR 300.000 credited\r\n" +
	"--b1--\r\n"

func TestParseMessage_MultipartPrefersPlainText(t *testing.T) {
	rec, err := emailsource.ParseMessage(strings.NewReader(rawMultipart))
	require.NoError(t, err)

	assert.Equal(t, "Credit Advice", rec.Subject)
	assert.Equal(t, "Amount: OMR 300.000 credited", rec.Body)
}

func TestUploadSource_FullMessage(t *testing.T) {
	source := &emailsource.UploadSource{
		Filename: "alert.eml",
		Content:  []byte(rawSinglePart),
	}

	records, err := source.Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 1)

	rec := records[0]
	assert.Equal(t, "Transaction Alert", rec.Subject)
	assert.Equal(t, "Amount: OMR 125.750 debited", rec.Body)
	assert.True(t, strings.HasPrefix(rec.ID, "upload_"), "id %q", rec.ID)
}
