package classifier

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"servedc-be/models"
)

func TestClassifyKeywords(t *testing.T) {
	cases := []struct {
		text string
		want models.Category
	}{
		{"Suspicious person checking car doors on my block", models.Safety},
		{"Uptick in break-ins, police were called", models.Safety},
		{"My car is stuck in the mud, need a tow", models.UrgentHelp},
		{"This is an emergency, water main burst", models.UrgentHelp},
		{"Free canned goods near Logan Circle", models.Giveaway},
		{"Taking donation drop-offs this weekend", models.Giveaway},
		{"Looking for volunteers for the river cleanup", models.SocialImpact},
		{"Lost my keys somewhere on 14th street", models.General},
		{"", models.General},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, Classify(tc.text), "text: %q", tc.text)
	}
}

func TestClassifySafetyOutranksGiveaway(t *testing.T) {
	// Both "free" and "danger" appear; safety signals win.
	assert.Equal(t, models.Safety, Classify("Free couch on the curb but danger: broken glass around it"))
}

func TestClassifyUrgentOutranksSocialImpact(t *testing.T) {
	assert.Equal(t, models.UrgentHelp, Classify("urgent: community garden flooding"))
}

func TestClassifyCaseInsensitive(t *testing.T) {
	assert.Equal(t, models.Safety, Classify("POLICE activity on the corner"))
	assert.Equal(t, models.Giveaway, Classify("FREE books outside"))
}

func TestClassifyDeterministic(t *testing.T) {
	text := "free food giveaway but watch out, suspicious van nearby"
	first := Classify(text)
	for i := 0; i < 50; i++ {
		assert.Equal(t, first, Classify(text))
	}
}
