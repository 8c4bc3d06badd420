package constant

import "testing"

func TestIsValid(t *testing.T) {
	tests := []struct {
		name string
		got  bool
		want bool
	}{
		{"paper status", PaperStatusUnderReview.IsValid(), true},
		{"unknown paper status", PaperStatus("archived").IsValid(), false},
		{"paper topic", PaperTopicDataScience.IsValid(), true},
		{"topic is case sensitive", PaperTopic("data science").IsValid(), false},
		{"author role", AuthorRoleCoAuthor.IsValid(), true},
		{"unknown author role", AuthorRole("editor").IsValid(), false},
		{"assignment status", AssignmentStatusCancelled.IsValid(), true},
		{"unknown assignment status", AssignmentStatus("declined").IsValid(), false},
		{"review status", ReviewStatusSubmitted.IsValid(), true},
		{"draft review status", ReviewStatus("draft").IsValid(), false},
		{"empty review status", ReviewStatus("").IsValid(), false},
		{"decision", DecisionRevise.IsValid(), true},
		{"lowercase decision", DecisionValue("accept").IsValid(), false},
		{"role", RoleReviewer.IsValid(), true},
		{"unknown role", Role("Guest").IsValid(), false},
	}

	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s: IsValid() = %v, want %v", tt.name, tt.got, tt.want)
		}
	}
}

func TestBucketOf(t *testing.T) {
	tests := map[int]RecommendationBucket{
		1: BucketReject, 3: BucketReject,
		4: BucketRevise, 6: BucketRevise,
		7: BucketAccept, 10: BucketAccept,
	}

	for score, want := range tests {
		if got := BucketOf(score); got != want {
			t.Errorf("BucketOf(%d) = %s, want %s", score, got, want)
		}
	}
}
