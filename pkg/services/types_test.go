package services

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewListArguments(t *testing.T) {
	tests := []struct {
		name  string
		query url.Values
		want  ListArguments
	}{
		{
			name:  "defaults",
			query: url.Values{},
			want:  ListArguments{Page: 1, Size: 100},
		},
		{
			name:  "explicit page and size",
			query: url.Values{"page": []string{"3"}, "size": []string{"25"}},
			want:  ListArguments{Page: 3, Size: 25},
		},
		{
			name:  "search term",
			query: url.Values{"search": []string{"nguyen"}},
			want:  ListArguments{Page: 1, Size: 100, Search: "nguyen"},
		},
		{
			name:  "oversized size is capped",
			query: url.Values{"size": []string{"1000000"}},
			want:  ListArguments{Page: 1, Size: 65500},
		},
		{
			name:  "negative size is capped",
			query: url.Values{"size": []string{"-5"}},
			want:  ListArguments{Page: 1, Size: 65500},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, &tt.want, NewListArguments(tt.query))
		})
	}
}

func TestListArguments_Validate(t *testing.T) {
	assert.NoError(t, (&ListArguments{Page: 1, Size: 10}).Validate())
	assert.Error(t, (&ListArguments{Page: 0, Size: 10}).Validate())
	assert.Error(t, (&ListArguments{Page: 1, Size: 0}).Validate())
}

func TestListArguments_Offset(t *testing.T) {
	assert.Equal(t, 0, (&ListArguments{Page: 1, Size: 100}).Offset())
	assert.Equal(t, 100, (&ListArguments{Page: 2, Size: 100}).Offset())
	assert.Equal(t, 50, (&ListArguments{Page: 3, Size: 25}).Offset())
}
