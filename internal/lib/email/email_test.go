package email

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender_PreviewData(t *testing.T) {
	for name, data := range PreviewData {
		t.Run(string(name), func(t *testing.T) {
			body, err := Render(name, data)
			require.NoError(t, err)

			for _, value := range data {
				assert.Contains(t, body, value)
			}
		})
	}
}

func TestRender_EscapesHTML(t *testing.T) {
	body, err := Render(TemplateWelcome, map[string]string{"UserName": "<b>x</b>"})
	require.NoError(t, err)

	assert.NotContains(t, body, "<b>x</b>")
	assert.Contains(t, body, "&lt;b&gt;x&lt;/b&gt;")
}

func TestRender_Errors(t *testing.T) {
	_, err := Render("missing", nil)
	assert.Error(t, err)

	_, err = Render(TemplatePhotoLiked, map[string]string{"OwnerName": "John"})
	assert.Error(t, err)
}
