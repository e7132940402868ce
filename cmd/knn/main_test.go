package main

import (
	"context"
	"errors"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-sod/medknn/internal/predictor"
)

func TestRun(t *testing.T) {
	dir, err := ioutil.TempDir("", "knn")
	if err != nil {
		t.Fatalf("unable create temp dir: %v", err)
	}
	defer os.RemoveAll(dir)

	train := filepath.Join(dir, "train.csv")
	test := filepath.Join(dir, "test.csv")
	out := filepath.Join(dir, "result.txt")
	files := map[string]string{
		train: "age,sex,cp,trestbps,chol,fbs,restecg,thalach,exang,oldpeak,slope,ca,thal,target\n" +
			"57,1,1,130,131,0,1,115,1,1.2,2,1,3,0\n" +
			"63,1,4,145,233,1,2,150,0,2.3,3,0,6,1\n",
		test: "age,sex,cp,trestbps,chol,fbs,restecg,thalach,exang,oldpeak,slope,ca,thal\n" +
			"57,1,1,130,131,0,1,115,1,1.2,2,1,3\n",
	}
	for path, content := range files {
		if err := ioutil.WriteFile(path, []byte(content), 0600); err != nil {
			t.Fatalf("unable write %s: %v", path, err)
		}
	}

	args := []string{"--train", train, "--test", test, "--out", out, "--k", "1"}
	if err := run(context.Background(), args); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	content, err := ioutil.ReadFile(out)
	if err != nil {
		t.Fatalf("unable read result: %v", err)
	}
	if string(content) != "0" {
		t.Errorf("result got: %q, expected: %q", content, "0")
	}

	os.Remove(out)
	args = []string{"--train", train, "--test", test, "--out", out, "--k", "0"}
	if err := run(context.Background(), args); !errors.Is(err, predictor.ErrConfiguration) {
		t.Errorf("error got: %v, expected: %v", err, predictor.ErrConfiguration)
	}
	if _, err := os.Stat(out); !os.IsNotExist(err) {
		t.Errorf("no output file must exist after a failed run, stat got: %v", err)
	}
}
