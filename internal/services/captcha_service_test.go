package services

import (
	"strings"
	"testing"

	"github.com/jumx0202/ordersvc/internal/tokenstore"
)

func TestCaptchaServiceImpl_CreateAndVerify(t *testing.T) {
	svc := NewCaptchaService(DefaultCaptchaConfig())
	t.Cleanup(svc.Close)

	id, code, err := svc.Create()
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if id == "" {
		t.Fatal("expected non-empty challenge id")
	}
	if len(code) != 4 {
		t.Errorf("expected 4 character code, got %q", code)
	}
	for _, r := range code {
		if !strings.ContainsRune(tokenstore.CaptchaAlphabet, r) {
			t.Errorf("code %q uses character outside the captcha alphabet", code)
		}
	}

	if !svc.Verify(id, code) {
		t.Error("expected verify to succeed")
	}
	if svc.Verify(id, code) {
		t.Error("expected consumed challenge to fail")
	}
}

func TestCaptchaServiceImpl_VerifyIgnoresCase(t *testing.T) {
	svc := NewCaptchaService(DefaultCaptchaConfig())
	t.Cleanup(svc.Close)

	id, code, err := svc.Create()
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if !svc.Verify(id, strings.ToLower(code)) {
		t.Error("expected lowercase answer to verify")
	}
}

func TestCaptchaServiceImpl_WrongAnswerDoesNotConsume(t *testing.T) {
	svc := NewCaptchaService(DefaultCaptchaConfig())
	t.Cleanup(svc.Close)

	id, code, err := svc.Create()
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if svc.Verify(id, "0000") {
		t.Error("expected wrong answer to fail")
	}
	if !svc.Verify(id, code) {
		t.Error("expected correct answer to verify after a wrong one")
	}
}

func TestCaptchaServiceImpl_DistinctChallenges(t *testing.T) {
	svc := NewCaptchaService(DefaultCaptchaConfig())
	t.Cleanup(svc.Close)

	id1, code1, err := svc.Create()
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	id2, code2, err := svc.Create()
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if id1 == id2 {
		t.Error("expected distinct challenge ids")
	}
	// Answers are bound to their own challenge.
	if svc.Verify(id1, code2) && code1 != code2 {
		t.Error("expected answer for one challenge not to verify another")
	}
}
