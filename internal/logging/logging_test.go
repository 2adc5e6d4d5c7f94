package logging_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/zap/zapcore"

	"github.com/zdziszkee/swift-registry/internal/logging"
)

func TestLogging(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Logging Suite")
}

var _ = Describe("New", func() {
	DescribeTable("should honour the configured level",
		func(level string, enabled, disabled zapcore.Level) {
			logger, err := logging.New(level, "json")
			Expect(err).NotTo(HaveOccurred())
			Expect(logger.Core().Enabled(enabled)).To(BeTrue())
			Expect(logger.Core().Enabled(disabled)).To(BeFalse())
		},
		Entry("debug", "debug", zapcore.DebugLevel, zapcore.Level(-2)),
		Entry("info", "info", zapcore.InfoLevel, zapcore.DebugLevel),
		Entry("upper case warn", "WARN", zapcore.WarnLevel, zapcore.InfoLevel),
		Entry("empty defaults to info", "", zapcore.InfoLevel, zapcore.DebugLevel),
	)

	It("should build a console logger for text format", func() {
		logger, err := logging.New("info", "text")
		Expect(err).NotTo(HaveOccurred())
		Expect(logger).NotTo(BeNil())
	})

	It("should reject an unknown level", func() {
		_, err := logging.New("loud", "json")
		Expect(err).To(MatchError(ContainSubstring(`invalid log level "loud"`)))
	})

	It("should reject an unknown format", func() {
		_, err := logging.New("info", "xml")
		Expect(err).To(MatchError(`invalid log format "xml"`))
	})
})
