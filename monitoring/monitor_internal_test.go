package monitoring

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/qtsim/quantum"
	"github.com/sarchlab/qtsim/teleport"
)

var _ = Describe("Monitor", func() {
	var (
		m       *Monitor
		handler http.Handler
	)

	get := func(path string) *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))

		return rec
	}

	BeforeEach(func() {
		m = NewMonitor()
		handler = m.Router()
	})

	It("should fall back to a random port for reserved ports", func() {
		Expect(m.WithPortNumber(80).portNumber).To(Equal(0))
		Expect(m.WithPortNumber(8080).portNumber).To(Equal(8080))
	})

	It("should list progress bars", func() {
		bar := m.CreateProgressBar("Batch", 10)
		bar.IncrementInProgress(3)
		bar.MoveInProgressToFinished(2)
		bar.IncrementFinished(1)

		rec := get("/api/progress")

		Expect(rec.Code).To(Equal(http.StatusOK))
		var bars []progressBarSnapshot
		Expect(json.Unmarshal(rec.Body.Bytes(), &bars)).To(Succeed())
		Expect(bars).To(HaveLen(1))
		Expect(bars[0].ID).To(Equal("bar-1"))
		Expect(bars[0].Name).To(Equal("Batch"))
		Expect(bars[0].Total).To(Equal(uint64(10)))
		Expect(bars[0].Finished).To(Equal(uint64(3)))
		Expect(bars[0].InProgress).To(Equal(uint64(1)))
	})

	It("should remove completed progress bars", func() {
		first := m.CreateProgressBar("First", 1)
		m.CreateProgressBar("Second", 1)

		m.CompleteProgressBar(first)

		var bars []progressBarSnapshot
		Expect(json.Unmarshal(get("/api/progress").Body.Bytes(), &bars)).To(Succeed())
		Expect(bars).To(HaveLen(1))
		Expect(bars[0].Name).To(Equal("Second"))
	})

	It("should report process resources", func() {
		rec := get("/api/resource")

		Expect(rec.Code).To(Equal(http.StatusOK))
		var rsp resourceRsp
		Expect(json.Unmarshal(rec.Body.Bytes(), &rsp)).To(Succeed())
		Expect(rsp.MemorySize).To(BeNumerically(">", 0))
	})

	It("should reject a bad profiling duration", func() {
		Expect(get("/api/profile?ms=abc").Code).To(Equal(http.StatusBadRequest))
	})

	Context("with results", func() {
		var results []teleport.RunResult

		BeforeEach(func() {
			results = nil
			for _, s := range quantum.States {
				res, err := teleport.Run(teleport.RunConfig{
					InitialState: s,
					BellType:     quantum.PhiPlus,
					ChannelDelay: 10,
				})
				Expect(err).NotTo(HaveOccurred())
				results = append(results, res)
			}

			m.RegisterResults(func() []teleport.RunResult { return results })
			m.RegisterSummary(func() any {
				return map[string]int{"total": len(results)}
			})
		})

		It("should list results", func() {
			rec := get("/api/results?limit=2")

			Expect(rec.Code).To(Equal(http.StatusOK))
			var listed []teleport.RunResult
			Expect(json.Unmarshal(rec.Body.Bytes(), &listed)).To(Succeed())
			Expect(listed).To(Equal(results[:2]))
		})

		It("should serialize one result", func() {
			rec := get("/api/result/1")

			Expect(rec.Code).To(Equal(http.StatusOK))
			Expect(rec.Body.Len()).To(BeNumerically(">", 0))
		})

		It("should return 404 for a missing result", func() {
			Expect(get("/api/result/3").Code).To(Equal(http.StatusNotFound))
			Expect(get("/api/result/x").Code).To(Equal(http.StatusNotFound))
		})

		It("should report the summary", func() {
			rec := get("/api/summary")

			Expect(rec.Code).To(Equal(http.StatusOK))
			Expect(rec.Body.String()).To(MatchJSON(`{"total":3}`))
		})
	})

	It("should return 404 for the summary when none is registered", func() {
		Expect(get("/api/summary").Code).To(Equal(http.StatusNotFound))
	})

	It("should list no results when none is registered", func() {
		rec := get("/api/results")

		Expect(rec.Code).To(Equal(http.StatusOK))
		Expect(rec.Body.String()).To(MatchJSON(`[]`))
	})

	It("should serve the web page", func() {
		rec := get("/")

		Expect(rec.Code).To(Equal(http.StatusOK))
		Expect(rec.Body.String()).To(ContainSubstring("Teleportation batch"))
	})
})
