package analytic_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestAnalytic(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Analytic Suite")
}
