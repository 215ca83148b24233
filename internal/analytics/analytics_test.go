package analytics

import "testing"

func answer(id int, domain string, correct bool) AnswerRecord {
	chosen := "A"
	want := "A"
	if !correct {
		chosen = "B"
	}
	return AnswerRecord{QuestionID: id, Chosen: chosen, Correct: want, IsCorrect: correct, Domain: domain}
}

func TestDomainStats(t *testing.T) {
	answers := []AnswerRecord{
		answer(1, "Networking", true),
		answer(2, "Networking", false),
		answer(3, "Security", true),
	}

	stats := DomainStats(answers)
	if got := stats["Networking"]; got.Correct != 1 || got.Total != 2 {
		t.Errorf("Networking = %+v, want {1 2}", got)
	}
	if got := stats["Security"]; got.Correct != 1 || got.Total != 1 {
		t.Errorf("Security = %+v, want {1 1}", got)
	}
	if _, ok := stats["Storage"]; ok {
		t.Error("unanswered domain present in stats")
	}
}

func TestDomainStats_Empty(t *testing.T) {
	if stats := DomainStats(nil); len(stats) != 0 {
		t.Errorf("DomainStats(nil) = %v, want empty", stats)
	}
}

func TestBuildResult(t *testing.T) {
	answers := []AnswerRecord{
		answer(10, "A", true),
		answer(11, "A", false),
		answer(12, "B", false),
		answer(13, "B", true),
	}

	res := BuildResult(answers, "alex")

	if res.Total != 4 || res.Correct != 2 || res.Incorrect != 2 {
		t.Errorf("totals = %d/%d/%d, want 4/2/2", res.Total, res.Correct, res.Incorrect)
	}
	if res.Percentage != 50.0 {
		t.Errorf("Percentage = %v, want 50.0", res.Percentage)
	}
	if res.User != "alex" {
		t.Errorf("User = %q", res.User)
	}
	if len(res.WrongQuestionIDs) != 2 || res.WrongQuestionIDs[0] != 11 || res.WrongQuestionIDs[1] != 12 {
		t.Errorf("WrongQuestionIDs = %v, want [11 12] in answer order", res.WrongQuestionIDs)
	}
	if res.PerDomain["A"].Total != 2 || res.PerDomain["A"].Correct != 1 {
		t.Errorf("PerDomain[A] = %+v", res.PerDomain["A"])
	}
	if res.Timestamp.IsZero() {
		t.Error("Timestamp not set")
	}
	if len(res.Answers) != len(answers) {
		t.Errorf("answer log length = %d, want %d", len(res.Answers), len(answers))
	}
}

func TestBuildResult_EmptyLog(t *testing.T) {
	res := BuildResult(nil, "alex")
	if res.Percentage != 0.0 {
		t.Errorf("Percentage = %v, want 0.0 for empty log", res.Percentage)
	}
	if res.Total != 0 || res.Correct != 0 || res.Incorrect != 0 {
		t.Errorf("totals = %d/%d/%d, want zeros", res.Total, res.Correct, res.Incorrect)
	}
}

func TestBuildResult_PercentageRounding(t *testing.T) {
	answers := []AnswerRecord{
		answer(1, "A", true),
		answer(2, "A", false),
		answer(3, "A", false),
	}
	res := BuildResult(answers, "u")
	if res.Percentage != 33.33 {
		t.Errorf("Percentage = %v, want 33.33", res.Percentage)
	}
}

func TestDomainCountAccuracy(t *testing.T) {
	if acc := (DomainCount{}).Accuracy(); acc != 0 {
		t.Errorf("empty accuracy = %v, want 0", acc)
	}
	if acc := (DomainCount{Correct: 3, Total: 4}).Accuracy(); acc != 0.75 {
		t.Errorf("accuracy = %v, want 0.75", acc)
	}
}
