package cmdrun

import "testing"

func TestRunCmdSync(t *testing.T) {
	if err := RunCmdSync("true"); err != nil {
		t.Fatal(err)
	}
	if err := RunCmdSync("false"); err == nil {
		t.Fatal("expected err")
	}
}

func TestRunCmdCaptured(t *testing.T) {
	out, err := RunCmdCaptured("echo", "hello")
	if err != nil {
		t.Fatal(err)
	}
	if out != "hello" {
		t.Fatalf("unexpected output: %q", out)
	}
}
