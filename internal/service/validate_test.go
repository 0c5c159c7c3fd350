package service

import "testing"

func TestIsValidUsername(t *testing.T) {
	valid := []string{"alice", "Alice_01", "a-b-c-d", "user1234"}
	for _, v := range valid {
		if !IsValidUsername(v) {
			t.Errorf("expected %q valid", v)
		}
	}
	invalid := []string{"", "abc", "has space", "toolongusernametoolong", "名前ユーザー", "a@b"}
	for _, v := range invalid {
		if IsValidUsername(v) {
			t.Errorf("expected %q invalid", v)
		}
	}
}

func TestIsValidMobile(t *testing.T) {
	valid := []string{"13812345678", "19900000000", "15511112222"}
	for _, v := range valid {
		if !IsValidMobile(v) {
			t.Errorf("expected %q valid", v)
		}
	}
	invalid := []string{"", "12812345678", "1381234567", "138123456789", "abc", "+8613812345678"}
	for _, v := range invalid {
		if IsValidMobile(v) {
			t.Errorf("expected %q invalid", v)
		}
	}
}

func TestIsValidEmail(t *testing.T) {
	valid := []string{"a@b.co", "alice@example.com", "x.y+z@sub.example.org"}
	for _, v := range valid {
		if !IsValidEmail(v) {
			t.Errorf("expected %q valid", v)
		}
	}
	invalid := []string{"", "alice", "alice@", "@example.com", "a b@example.com", "a@b"}
	for _, v := range invalid {
		if IsValidEmail(v) {
			t.Errorf("expected %q invalid", v)
		}
	}
}
