package locale

import (
	"testing"

	"github.com/poiesic/ingres/ai"
	"github.com/stretchr/testify/assert"
)

func TestDetect(t *testing.T) {
	tests := []struct {
		name string
		text string
		want ai.Language
	}{
		{"blank", "   ", ai.English},
		{"english", "What is the groundwater situation in Karnataka for 2023?", ai.English},
		{"hindi", "कर्नाटक में भूजल की स्थिति क्या है और कितना पानी बचा है", ai.Hindi},
		{"kannada", "ಕರ್ನಾಟಕದಲ್ಲಿ ಅಂತರ್ಜಲದ ಸ್ಥಿತಿ ಏನು ಮತ್ತು ಎಷ್ಟು ನೀರು ಉಳಿದಿದೆ", ai.Kannada},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Detect(tt.text))
		})
	}
}
