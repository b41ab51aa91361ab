package mysql

const upsertDestinationSQL = `
INSERT INTO destinations
  (id, position, name, tagline, region, lat, lng, description,
   best_time, duration, how_to_reach, highlights, activities, tips)
VALUES
  (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON DUPLICATE KEY UPDATE
  position     = VALUES(position),
  name         = VALUES(name),
  tagline      = VALUES(tagline),
  region       = VALUES(region),
  lat          = VALUES(lat),
  lng          = VALUES(lng),
  description  = VALUES(description),
  best_time    = VALUES(best_time),
  duration     = VALUES(duration),
  how_to_reach = VALUES(how_to_reach),
  highlights   = VALUES(highlights),
  activities   = VALUES(activities),
  tips         = VALUES(tips),
  updated_at   = CURRENT_TIMESTAMP
`

// Ties on position fall back to id so the order is total.
const listDestinationsSQL = `
SELECT
  id, name, tagline, region, lat, lng, description,
  best_time, duration, how_to_reach, highlights, activities, tips
FROM destinations
ORDER BY position, id
`
