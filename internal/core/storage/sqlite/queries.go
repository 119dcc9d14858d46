package sqlite

import "github.com/aevon-lab/project-locus/internal/core/stat"

// Days are stored as "YYYY-MM-DD" TEXT, which sorts and compares as dates.

const (
	queryInsertMeasure = `
		INSERT INTO measure (
			created, time, lat, lon, accuracy, altitude, altitude_accuracy, radio
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	// queryInsertMeasureWithID fails with a primary key constraint error
	// when the ID is taken.
	queryInsertMeasureWithID = `
		INSERT INTO measure (
			id, created, time, lat, lon, accuracy, altitude, altitude_accuracy, radio
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	queryInsertCellMeasure = `
		INSERT INTO cell_measure (
			measure_id, created, time, lat, lon, accuracy, altitude, altitude_accuracy,
			radio, mcc, mnc, lac, cid, psc, asu, signal, ta
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	queryInsertWifiMeasure = `
		INSERT INTO wifi_measure (
			measure_id, created, time, lat, lon, accuracy, altitude, altitude_accuracy,
			key, channel, signal
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	queryCountMeasureByDay = `
		SELECT created, COUNT(*) FROM measure
		WHERE created >= ? AND created < ?
		GROUP BY created ORDER BY created
	`

	queryCountCellMeasureByDay = `
		SELECT created, COUNT(*) FROM cell_measure
		WHERE created >= ? AND created < ?
		GROUP BY created ORDER BY created
	`

	queryCountWifiMeasureByDay = `
		SELECT created, COUNT(*) FROM wifi_measure
		WHERE created >= ? AND created < ?
		GROUP BY created ORDER BY created
	`

	queryCountDistinctCellsBefore = `
		SELECT COUNT(*) FROM (
			SELECT DISTINCT radio, mcc, mnc, lac, cid
			FROM cell_measure
			WHERE created < ?
		)
	`

	queryCountDistinctWifisBefore = `
		SELECT COUNT(DISTINCT key) FROM wifi_measure WHERE created < ?
	`

	queryCountMeasures     = `SELECT COUNT(*) FROM measure`
	queryCountCellMeasures = `SELECT COUNT(*) FROM cell_measure`
	queryCountWifiMeasures = `SELECT COUNT(*) FROM wifi_measure`

	// queryInsertStat leaves an existing (key, time) row untouched;
	// zero rows affected means the stat was already present.
	queryInsertStat = `
		INSERT OR IGNORE INTO stat (key, time, value) VALUES (?, ?, ?)
	`

	// querySelectStatsForDays takes the day set as a JSON array.
	querySelectStatsForDays = `
		SELECT time, value FROM stat
		WHERE key = ?
		  AND time IN (SELECT value FROM json_each(?))
		ORDER BY time
	`

	querySelectStatRange = `
		SELECT time, value FROM stat
		WHERE key = ? AND time >= ? AND time < ?
		ORDER BY time
	`

	querySelectLatestStat = `
		SELECT time, value FROM stat
		WHERE key = ?
		ORDER BY time DESC
		LIMIT 1
	`

	querySumStat = `SELECT COALESCE(SUM(value), 0) FROM stat WHERE key = ?`
)

var countByDayQueries = map[stat.Source]string{
	stat.SourceMeasure: queryCountMeasureByDay,
	stat.SourceCell:    queryCountCellMeasureByDay,
	stat.SourceWifi:    queryCountWifiMeasureByDay,
}

var countDistinctQueries = map[stat.Source]string{
	stat.SourceCell: queryCountDistinctCellsBefore,
	stat.SourceWifi: queryCountDistinctWifisBefore,
}

var countQueries = map[stat.Source]string{
	stat.SourceMeasure: queryCountMeasures,
	stat.SourceCell:    queryCountCellMeasures,
	stat.SourceWifi:    queryCountWifiMeasures,
}
