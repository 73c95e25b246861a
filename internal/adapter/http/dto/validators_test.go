package dto

import (
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSafeIDValidator(t *testing.T) {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	require.True(t, ok)

	type probe struct {
		ID string `binding:"safe_id"`
	}

	tests := []struct {
		name  string
		id    string
		valid bool
	}{
		{"alphanumeric", "ACC1001", true},
		{"with dash and dot", "ACC-10.01", true},
		{"with underscore", "acc_1001", true},
		{"sql injection attempt", "1'; DROP TABLE accounts--", false},
		{"spaces", "ACC 1001", false},
		{"html", "<script>", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Struct(probe{ID: tt.id})
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestSanitizeStruct(t *testing.T) {
	upi := "  merchant@upi  "
	req := TransferRequest{
		FromAccountNumber: "  ACC-1001  ",
		UPIID:             &upi,
	}
	SanitizeStruct(&req)

	assert.Equal(t, "ACC-1001", req.FromAccountNumber)
	assert.Equal(t, "merchant@upi", *req.UPIID)
}

func TestSanitizeStruct_EscapesHTML(t *testing.T) {
	req := FeedbackRequest{FeedbackText: `<script>alert("x")</script>`}
	SanitizeStruct(&req)

	assert.Equal(t, "&lt;script&gt;alert(&#34;x&#34;)&lt;/script&gt;", req.FeedbackText)
}

func TestSanitizeStruct_NonStructIsNoop(t *testing.T) {
	s := "  untouched  "
	SanitizeStruct(&s)
	assert.Equal(t, "  untouched  ", s)

	req := LoginRequest{Email: " a@b.com "}
	SanitizeStruct(req) // not a pointer, no-op
	assert.Equal(t, " a@b.com ", req.Email)
}

func TestSanitizeStruct_NilPointerField(t *testing.T) {
	req := TransferRequest{FromAccountNumber: "ACC-1001"}
	SanitizeStruct(&req)

	assert.Nil(t, req.UPIID)
	assert.Nil(t, req.ToAccountNumber)
}
