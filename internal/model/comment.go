package model

import "time"

type Comment struct {
	ID        int64     `db:"id" json:"id"`
	ImageUUID string    `db:"image_uuid" json:"image_uuid"`
	UserUUID  string    `db:"user_uuid" json:"user_uuid"`
	Comment   string    `db:"comment" json:"comment"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

type Tag struct {
	ID   int64  `db:"id" json:"id"`
	Name string `db:"name_tag" json:"name"`
}
