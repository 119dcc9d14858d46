package postgres

import "github.com/aevon-lab/project-locus/internal/core/stat"

// SQL for the measurement collections and the stat table.
// Day parameters are passed as "YYYY-MM-DD" text and cast explicitly so the
// session time zone never shifts a bucket.

const (
	queryInsertMeasure = `
		INSERT INTO measure (
			created, time, lat, lon, accuracy, altitude, altitude_accuracy, radio
		)
		VALUES ($1::date, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`

	// queryInsertMeasureWithID keeps caller-provided IDs.
	// ON CONFLICT DO NOTHING returns no rows (sql.ErrNoRows) for duplicates.
	queryInsertMeasureWithID = `
		INSERT INTO measure (
			id, created, time, lat, lon, accuracy, altitude, altitude_accuracy, radio
		)
		VALUES ($1, $2::date, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (id) DO NOTHING
		RETURNING id
	`

	queryInsertCellMeasure = `
		INSERT INTO cell_measure (
			measure_id, created, time, lat, lon, accuracy, altitude, altitude_accuracy,
			radio, mcc, mnc, lac, cid, psc, asu, signal, ta
		)
		VALUES ($1, $2::date, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
	`

	queryInsertWifiMeasure = `
		INSERT INTO wifi_measure (
			measure_id, created, time, lat, lon, accuracy, altitude, altitude_accuracy,
			key, channel, signal
		)
		VALUES ($1, $2::date, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	queryCountMeasureByDay = `
		SELECT created, COUNT(*)
		FROM measure
		WHERE created >= $1::date AND created < $2::date
		GROUP BY created
		ORDER BY created ASC
	`

	queryCountCellMeasureByDay = `
		SELECT created, COUNT(*)
		FROM cell_measure
		WHERE created >= $1::date AND created < $2::date
		GROUP BY created
		ORDER BY created ASC
	`

	queryCountWifiMeasureByDay = `
		SELECT created, COUNT(*)
		FROM wifi_measure
		WHERE created >= $1::date AND created < $2::date
		GROUP BY created
		ORDER BY created ASC
	`

	queryCountDistinctCellsBefore = `
		SELECT COUNT(*) FROM (
			SELECT DISTINCT radio, mcc, mnc, lac, cid
			FROM cell_measure
			WHERE created < $1::date
		) AS towers
	`

	queryCountDistinctWifisBefore = `
		SELECT COUNT(DISTINCT key)
		FROM wifi_measure
		WHERE created < $1::date
	`

	queryCountMeasures     = `SELECT COUNT(*) FROM measure`
	queryCountCellMeasures = `SELECT COUNT(*) FROM cell_measure`
	queryCountWifiMeasures = `SELECT COUNT(*) FROM wifi_measure`

	// queryInsertStat never overwrites: an existing (key, time) row wins and
	// the statement returns no rows.
	queryInsertStat = `
		INSERT INTO stat (key, time, value)
		VALUES ($1, $2::date, $3)
		ON CONFLICT (key, time) DO NOTHING
		RETURNING id
	`

	querySelectStatsForDays = `
		SELECT time, value
		FROM stat
		WHERE key = $1
		  AND time = ANY($2::date[])
		ORDER BY time ASC
	`

	querySelectStatRange = `
		SELECT time, value
		FROM stat
		WHERE key = $1
		  AND time >= $2::date
		  AND time < $3::date
		ORDER BY time ASC
	`

	querySelectLatestStat = `
		SELECT time, value
		FROM stat
		WHERE key = $1
		ORDER BY time DESC
		LIMIT 1
	`

	querySumStat = `SELECT COALESCE(SUM(value), 0) FROM stat WHERE key = $1`
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
