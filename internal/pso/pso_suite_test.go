package pso_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestPSO(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "pso suite")
}
