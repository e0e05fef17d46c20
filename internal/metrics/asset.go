package metrics

// RecordAssetSync folds one board's sync counters into the asset metrics
func (m *Metrics) RecordAssetSync(downloaded, skipped, failed, deleted int) {
	m.safeExecute("RecordAssetSync", func() {
		m.AssetsDownloadedTotal.Add(float64(downloaded))
		m.AssetsSkippedTotal.Add(float64(skipped))
		m.AssetsFailedTotal.Add(float64(failed))
		m.AssetsDeletedTotal.Add(float64(deleted))
	})
}
