// ABOUTME: SQL schema definition for the vitals database.
// ABOUTME: Defines readings, workouts, medications, imports, nutrition_log.
package db

const schema = `
CREATE TABLE IF NOT EXISTS readings (
    timestamp DATETIME NOT NULL,
    metric TEXT NOT NULL,
    value REAL NOT NULL,
    unit TEXT NOT NULL,
    source TEXT NOT NULL,
    PRIMARY KEY (timestamp, metric, source)
);

CREATE TABLE IF NOT EXISTS workouts (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    start_time DATETIME NOT NULL,
    end_time DATETIME,
    type TEXT NOT NULL,
    duration_seconds INTEGER,
    total_energy_kcal REAL,
    active_energy_kcal REAL,
    max_heart_rate REAL,
    avg_heart_rate REAL,
    distance_km REAL,
    step_count INTEGER,
    UNIQUE(start_time, type)
);

CREATE TABLE IF NOT EXISTS medications (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    timestamp DATETIME NOT NULL,
    scheduled_at DATETIME,
    medication TEXT NOT NULL,
    dosage REAL,
    scheduled_dosage REAL,
    unit TEXT,
    status TEXT,
    UNIQUE(timestamp, medication)
);

CREATE TABLE IF NOT EXISTS imports (
    import_id INTEGER PRIMARY KEY AUTOINCREMENT,
    filename TEXT UNIQUE NOT NULL,
    imported_at DATETIME NOT NULL,
    rows_added INTEGER NOT NULL,
    source TEXT NOT NULL,
    file_hash TEXT
);

CREATE TABLE IF NOT EXISTS nutrition_log (
    entry_id TEXT PRIMARY KEY,
    meal_time DATETIME NOT NULL,
    meal_type TEXT,
    meal_name TEXT,
    calories REAL,
    protein_g REAL,
    carbs_g REAL,
    fat_g REAL,
    fiber_g REAL,
    sugar_g REAL,
    sodium_mg REAL,
    notes TEXT,
    source TEXT DEFAULT 'cli',
    logged_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_readings_metric ON readings(metric, timestamp);
CREATE INDEX IF NOT EXISTS idx_readings_timestamp ON readings(timestamp);
CREATE INDEX IF NOT EXISTS idx_workouts_start_time ON workouts(start_time);
CREATE INDEX IF NOT EXISTS idx_workouts_type ON workouts(type);
CREATE INDEX IF NOT EXISTS idx_medications_timestamp ON medications(timestamp);
CREATE INDEX IF NOT EXISTS idx_medications_medication ON medications(medication);
CREATE INDEX IF NOT EXISTS idx_nutrition_meal_time ON nutrition_log(meal_time);
`
